package streaming

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"syscall"

	"github.com/Yulian302/filestream/logging"
)

// Source is anything that can serve byte ranges of a named resource. The
// filesystem store implements it; tests use in-memory sources.
type Source interface {
	Name() string
	Size() int64
	ContentType() string

	// ReadRange returns a reader over the end-inclusive interval [start, end].
	ReadRange(ctx context.Context, start, end int64) (io.ReadCloser, error)
}

// Serve writes src to w, honoring an optional pre-validated byte range.
// No range means status 200 with the full content; a range means 206 with a
// Content-Range header. Bytes are copied straight from the source reader to
// the response writer, so a slow client applies backpressure to the file read
// and no full-file buffering ever happens.
//
// Headers are committed before the first body byte, so mid-stream failures
// can only tear the connection down; they are returned for the caller to log.
func Serve(ctx context.Context, w http.ResponseWriter, src Source, rng *ByteRange) error {
	log := logging.FromContext(ctx)

	h := w.Header()
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Type", src.ContentType())

	start, end := int64(0), src.Size()-1
	status := http.StatusOK

	if rng != nil {
		start, end = rng.Start, rng.End
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, src.Size()))
		status = http.StatusPartialContent
	}

	length := end - start + 1
	if src.Size() == 0 {
		length = 0
	}
	h.Set("Content-Length", strconv.FormatInt(length, 10))
	w.WriteHeader(status)

	if length == 0 {
		return nil
	}

	log.Debug("stream started",
		slog.String("name", src.Name()),
		slog.Int64("start", start),
		slog.Int64("end", end),
		slog.Int64("total", src.Size()),
	)

	rc, err := src.ReadRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("open range %d-%d of %q: %w", start, end, src.Name(), err)
	}
	defer rc.Close()

	written, err := io.Copy(w, rc)
	if err != nil {
		return fmt.Errorf("stream %q after %d bytes: %w", src.Name(), written, err)
	}

	log.Debug("stream completed",
		slog.String("name", src.Name()),
		slog.Int64("bytes", written),
	)

	return nil
}

// IsClientDisconnect reports whether err is the client going away rather than
// a server-side failure. Disconnects are expected on streaming paths and are
// never escalated to error logs.
func IsClientDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, http.ErrAbortHandler) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "client disconnected")
}
