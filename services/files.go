package services

import (
	"fmt"

	"github.com/Yulian302/filestream/store"
	"github.com/Yulian302/filestream/streaming"
)

type FileService interface {
	List() ([]store.FileInfo, error)
	Descriptor(name string) (streaming.Source, store.FileInfo, error)
	Video() (streaming.Source, error)
	Delete(name string) error
	Ping() error
}

type FileServiceImpl struct {
	fileStore store.FileStore
	videoPath string
}

func NewFileService(fileStore store.FileStore, videoPath string) *FileServiceImpl {
	return &FileServiceImpl{
		fileStore: fileStore,
		videoPath: videoPath,
	}
}

var _ FileService = (*FileServiceImpl)(nil)

func (svc *FileServiceImpl) List() ([]store.FileInfo, error) {
	files, err := svc.fileStore.List()
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return files, nil
}

func (svc *FileServiceImpl) Descriptor(name string) (streaming.Source, store.FileInfo, error) {
	return svc.fileStore.Source(name)
}

// Video resolves the fixed demo video afresh on every request, so replacing
// the file on disk takes effect without a restart.
func (svc *FileServiceImpl) Video() (streaming.Source, error) {
	return store.NewFileSource(svc.videoPath)
}

func (svc *FileServiceImpl) Delete(name string) error {
	return svc.fileStore.Delete(name)
}

func (svc *FileServiceImpl) Ping() error {
	return svc.fileStore.Ping()
}
