package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"time"

	"github.com/Yulian302/filestream/httperrors"
	"github.com/Yulian302/filestream/store"
)

type UploadService interface {
	// IngestSingle consumes the first file part of a multipart body and
	// stores it. The returned record is only produced after the write is
	// durable on disk.
	IngestSingle(ctx context.Context, mr *multipart.Reader) (store.FileInfo, error)

	// IngestMany stores every file part of a multipart body, in order.
	IngestMany(ctx context.Context, mr *multipart.Reader) ([]store.FileInfo, error)
}

type UploadServiceImpl struct {
	fileStore     store.FileStore
	maxFileSize   int64
	uploadTimeout time.Duration
}

func NewUploadService(fileStore store.FileStore, maxFileSize int64, uploadTimeout time.Duration) *UploadServiceImpl {
	return &UploadServiceImpl{
		fileStore:     fileStore,
		maxFileSize:   maxFileSize,
		uploadTimeout: uploadTimeout,
	}
}

var _ UploadService = (*UploadServiceImpl)(nil)

func (svc *UploadServiceImpl) IngestSingle(ctx context.Context, mr *multipart.Reader) (store.FileInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.uploadTimeout)
	defer cancel()

	part, err := nextFilePart(ctx, mr)
	if errors.Is(err, io.EOF) {
		return store.FileInfo{}, httperrors.ErrNoFile
	}
	if err != nil {
		return store.FileInfo{}, err
	}
	defer part.Close()

	return svc.fileStore.Save(ctx, part.FileName(), part, svc.maxFileSize)
}

func (svc *UploadServiceImpl) IngestMany(ctx context.Context, mr *multipart.Reader) ([]store.FileInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.uploadTimeout)
	defer cancel()

	var saved []store.FileInfo
	for {
		part, err := nextFilePart(ctx, mr)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return saved, err
		}

		info, err := svc.fileStore.Save(ctx, part.FileName(), part, svc.maxFileSize)
		part.Close()
		if err != nil {
			return saved, err
		}
		saved = append(saved, info)
	}

	if len(saved) == 0 {
		return nil, httperrors.ErrNoFile
	}

	return saved, nil
}

// nextFilePart advances to the next part carrying a filename, skipping plain
// form fields. io.EOF means the body held no further file parts.
func nextFilePart(ctx context.Context, mr *multipart.Reader) (*multipart.Part, error) {
	for {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, httperrors.ErrUploadTimeout
			}
			return nil, err
		}

		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		if part.FileName() == "" {
			_ = part.Close()
			continue
		}
		return part, nil
	}
}
