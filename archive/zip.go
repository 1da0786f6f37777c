package archive

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Yulian302/filestream/logging"
	"github.com/Yulian302/filestream/streaming"
)

// Balanced deflate: large batches should not pin a core the way level 9 does,
// and store-only would waste bandwidth.
const deflateLevel = 5

// StreamZip writes the given sources into w as a single ZIP, in order,
// compressing incrementally so the archive is never materialized anywhere.
// A source that turns out to be unreadable (deleted between validation and
// archiving) is skipped and logged; the archive continues with the rest.
// Write failures on w (the client going away) abort immediately.
func StreamZip(ctx context.Context, w io.Writer, sources []streaming.Source) error {
	log := logging.FromContext(ctx)

	tw := &trackingWriter{w: w}
	zw := zip.NewWriter(tw)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, deflateLevel)
	})

	seen := make(map[string]int, len(sources))

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rc io.ReadCloser
		if src.Size() > 0 {
			var err error
			rc, err = src.ReadRange(ctx, 0, src.Size()-1)
			if err != nil {
				log.Warn("skipping unreadable archive entry",
					slog.String("name", src.Name()),
					slog.String("error", err.Error()),
				)
				continue
			}
		}

		hdr := &zip.FileHeader{
			Name:     entryName(seen, src.Name()),
			Method:   zip.Deflate,
			Modified: time.Now(),
		}

		ew, err := zw.CreateHeader(hdr)
		if err != nil {
			if rc != nil {
				rc.Close()
			}
			if tw.err != nil {
				return tw.err
			}
			return fmt.Errorf("create archive entry %q: %w", hdr.Name, err)
		}

		if rc == nil {
			continue
		}

		_, err = io.Copy(ew, rc)
		rc.Close()
		if err != nil {
			if tw.err != nil {
				return tw.err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// Source died mid-copy: the entry is truncated, the archive as a
			// whole still delivers the remaining files.
			log.Warn("archive entry truncated mid-read",
				slog.String("name", src.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
	}

	return zw.Close()
}

// entryName deduplicates archive entry names: a second "report.pdf" becomes
// "report (1).pdf".
func entryName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

// trackingWriter remembers the first sink error so StreamZip can tell a dead
// client apart from a dead source file.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}
