package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Metadata is the per-file record the index keeps alongside the payloads.
// It replaces the old loose-sidecar-per-file scheme, so a payload and its
// metadata can no longer drift apart file by file.
type Metadata struct {
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Index is a small embedded key-value store mapping stored names to their
// metadata, persisted as a single JSON file. Every mutation is written out
// via a temp file and rename, so a crash never leaves a torn index behind.
type Index struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Metadata
}

func OpenIndex(path string) (*Index, error) {
	ix := &Index{
		path:    path,
		entries: make(map[string]Metadata),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ix, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	if err := json.Unmarshal(data, &ix.entries); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	return ix, nil
}

func (ix *Index) Get(name string) (Metadata, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	meta, ok := ix.entries[name]
	return meta, ok
}

func (ix *Index) Put(name string, meta Metadata) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries[name] = meta
	return ix.persistLocked()
}

func (ix *Index) Delete(name string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.entries[name]; !ok {
		return nil
	}
	delete(ix.entries, name)
	return ix.persistLocked()
}

func (ix *Index) persistLocked() error {
	data, err := json.MarshalIndent(ix.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	tmp := ix.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp, ix.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace index: %w", err)
	}

	return nil
}

// indexFileName is a dotfile so listings skip it and the filename validation
// in safePath keeps it unreachable through the HTTP surface.
const indexFileName = ".index.json"

func indexPath(root string) string {
	return filepath.Join(root, indexFileName)
}
