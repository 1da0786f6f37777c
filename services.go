package main

import (
	"github.com/Yulian302/filestream/services"
)

type Services struct {
	Files   services.FileService
	Uploads services.UploadService
	Archive services.ArchiveService
}

func BuildServices(app *App) *Services {
	fileService := services.NewFileService(app.Store, app.Config.VideoPath)
	uploadService := services.NewUploadService(app.Store, app.Config.MaxFileSize, app.Config.UploadTimeout)
	archiveService := services.NewArchiveService(app.Store, app.Config.MaxBatchFiles)

	return &Services{
		Files:   fileService,
		Uploads: uploadService,
		Archive: archiveService,
	}
}
