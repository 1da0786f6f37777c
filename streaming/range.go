package streaming

import (
	"errors"
	"strconv"
	"strings"
)

// ByteRange is an end-inclusive byte interval within a resource of known size.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ErrUnsatisfiable is returned for any Range header that cannot be honored
// against the resource: out of bounds, inverted, multi-part, or malformed.
// Guessing an interval and streaming the wrong bytes is never acceptable.
var ErrUnsatisfiable = errors.New("requested range not satisfiable")

// ParseRange parses a Range header of the form "bytes=<start>-<end>" against
// a known total size. An absent header (empty string) means whole-file and
// yields a nil range. An open-ended "bytes=<start>-" covers the rest of the
// file. Multi-part specs like "bytes=0-10,20-30" and suffix specs like
// "bytes=-500" are rejected.
func ParseRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return nil, ErrUnsatisfiable
	}
	if strings.Contains(spec, ",") {
		return nil, ErrUnsatisfiable
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, ErrUnsatisfiable
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return nil, ErrUnsatisfiable
	}

	end := size - 1
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < 0 {
			return nil, ErrUnsatisfiable
		}
	}

	if start >= size || end >= size || start > end {
		return nil, ErrUnsatisfiable
	}

	return &ByteRange{Start: start, End: end}, nil
}
