package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Yulian302/filestream/httperrors"
	"github.com/Yulian302/filestream/streaming"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const fallbackMimeType = "application/octet-stream"

// FileInfo describes one stored upload.
type FileInfo struct {
	StoredName   string
	OriginalName string
	Size         int64
	MimeType     string
	UploadedAt   time.Time
}

// FileStore is the persistence surface the services are built against.
// DiskStore is the real implementation; tests use in-memory fakes.
type FileStore interface {
	Save(ctx context.Context, originalName string, r io.Reader, maxSize int64) (FileInfo, error)
	Stat(name string) (FileInfo, error)
	Source(name string) (streaming.Source, FileInfo, error)
	List() ([]FileInfo, error)
	Delete(name string) error
	Ping() error
}

// DiskStore keeps payloads as flat files under root and their metadata in an
// embedded index. Concurrent uploads never collide because every stored name
// is unique by construction; no locking is needed around the payloads.
type DiskStore struct {
	root  string
	index *Index
}

var _ FileStore = (*DiskStore)(nil)

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads root: %w", err)
	}

	ix, err := OpenIndex(indexPath(root))
	if err != nil {
		return nil, err
	}

	return &DiskStore{root: root, index: ix}, nil
}

// Save streams r into a freshly named file under root. The copy is capped at
// maxSize: one byte over aborts the upload and removes the partial file.
// Success is only reported after the data has been fsynced — a caller that
// sees a nil error can survive a crash without losing the upload.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader, maxSize int64) (FileInfo, error) {
	originalName = strings.TrimSpace(filepath.Base(originalName))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		return FileInfo{}, httperrors.ErrEmptyFilename
	}

	storedName := newStoredName(originalName)
	path := filepath.Join(s.root, storedName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return FileInfo{}, fmt.Errorf("create %q: %w", storedName, err)
	}

	written, err := io.Copy(f, io.LimitReader(&contextReader{ctx: ctx, r: r}, maxSize+1))
	if err != nil {
		s.discard(f, path)
		if errors.Is(err, context.DeadlineExceeded) {
			return FileInfo{}, httperrors.ErrUploadTimeout
		}
		return FileInfo{}, fmt.Errorf("write %q: %w", storedName, err)
	}
	if written > maxSize {
		s.discard(f, path)
		return FileInfo{}, httperrors.ErrFileTooLarge
	}

	if err := f.Sync(); err != nil {
		s.discard(f, path)
		return FileInfo{}, fmt.Errorf("sync %q: %w", storedName, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return FileInfo{}, fmt.Errorf("close %q: %w", storedName, err)
	}

	meta := Metadata{
		OriginalName: originalName,
		MimeType:     detectMimeType(path),
		Size:         written,
		UploadedAt:   time.Now().UTC(),
	}
	if err := s.index.Put(storedName, meta); err != nil {
		_ = os.Remove(path)
		return FileInfo{}, err
	}

	return fileInfo(storedName, meta), nil
}

func (s *DiskStore) Stat(name string) (FileInfo, error) {
	path, err := s.safePath(name)
	if err != nil {
		return FileInfo{}, err
	}

	st, err := os.Stat(path)
	if os.IsNotExist(err) {
		return FileInfo{}, httperrors.ErrNotFound
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %q: %w", name, err)
	}

	return s.describe(name, st.Size(), st.ModTime()), nil
}

// Source returns a range-readable view of a stored file.
func (s *DiskStore) Source(name string) (streaming.Source, FileInfo, error) {
	info, err := s.Stat(name)
	if err != nil {
		return nil, FileInfo{}, err
	}

	src := &diskSource{
		path:        filepath.Join(s.root, name),
		name:        info.OriginalName,
		size:        info.Size,
		contentType: info.MimeType,
	}
	return src, info, nil
}

// List walks the uploads directory and joins each payload with its index
// metadata. Files that predate the index still show up, with metadata
// reconstructed from the filesystem. Newest uploads come first.
func (s *DiskStore) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read uploads root: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		st, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, s.describe(entry.Name(), st.Size(), st.ModTime()))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})

	return files, nil
}

// Delete removes the payload and then its index entry, in that order:
// listings are driven by the directory, so a record is never observed with
// its payload already gone.
func (s *DiskStore) Delete(name string) error {
	path, err := s.safePath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return httperrors.ErrNotFound
		}
		return fmt.Errorf("remove %q: %w", name, err)
	}

	return s.index.Delete(name)
}

func (s *DiskStore) Ping() error {
	_, err := os.Stat(s.root)
	return err
}

func (s *DiskStore) describe(name string, size int64, modTime time.Time) FileInfo {
	if meta, ok := s.index.Get(name); ok {
		return fileInfo(name, meta)
	}

	return FileInfo{
		StoredName:   name,
		OriginalName: name,
		Size:         size,
		MimeType:     detectMimeType(filepath.Join(s.root, name)),
		UploadedAt:   modTime.UTC(),
	}
}

// safePath rejects anything that is not a plain filename inside root.
func (s *DiskStore) safePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", httperrors.ErrInvalidFilename
	}
	return filepath.Join(s.root, name), nil
}

func (s *DiskStore) discard(f *os.File, path string) {
	_ = f.Close()
	_ = os.Remove(path)
}

// newStoredName builds a collision-resistant name: millisecond timestamp,
// random suffix, original extension.
func newStoredName(originalName string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, filepath.Ext(originalName))
}

func detectMimeType(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fallbackMimeType
	}
	return mt.String()
}

func fileInfo(storedName string, meta Metadata) FileInfo {
	return FileInfo{
		StoredName:   storedName,
		OriginalName: meta.OriginalName,
		Size:         meta.Size,
		MimeType:     meta.MimeType,
		UploadedAt:   meta.UploadedAt,
	}
}

// contextReader aborts an in-flight copy once its context is done, so a
// timed-out upload stops consuming the request body at the next chunk.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
