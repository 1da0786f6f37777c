package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Yulian302/filestream/httperrors"
	"github.com/Yulian302/filestream/logging"
	"github.com/Yulian302/filestream/store"
	"github.com/Yulian302/filestream/streaming"
)

type ArchiveService interface {
	// Resolve validates an archive request and returns sources for the
	// filenames that actually exist, preserving the caller's order.
	Resolve(ctx context.Context, filenames []string) ([]streaming.Source, error)
}

type ArchiveServiceImpl struct {
	fileStore     store.FileStore
	maxBatchFiles int
}

func NewArchiveService(fileStore store.FileStore, maxBatchFiles int) *ArchiveServiceImpl {
	return &ArchiveServiceImpl{
		fileStore:     fileStore,
		maxBatchFiles: maxBatchFiles,
	}
}

var _ ArchiveService = (*ArchiveServiceImpl)(nil)

func (svc *ArchiveServiceImpl) Resolve(ctx context.Context, filenames []string) ([]streaming.Source, error) {
	if len(filenames) == 0 {
		return nil, httperrors.ErrNoFilenames
	}
	if len(filenames) > svc.maxBatchFiles {
		return nil, httperrors.ErrBatchTooLarge
	}

	log := logging.FromContext(ctx)

	sources := make([]streaming.Source, 0, len(filenames))
	for _, name := range filenames {
		src, _, err := svc.fileStore.Source(name)
		if err != nil {
			if errors.Is(err, httperrors.ErrNotFound) || errors.Is(err, httperrors.ErrInvalidFilename) {
				log.Warn("archive request names missing file", slog.String("filename", name))
				continue
			}
			return nil, err
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, httperrors.ErrNoValidFiles
	}

	return sources, nil
}
