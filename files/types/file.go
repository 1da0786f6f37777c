package types

import "time"

type File struct {
	Filename     string    `json:"filename"`     // Stored (on-disk) name
	OriginalName string    `json:"originalName"` // Name the client uploaded it as
	Size         int64     `json:"size"`         // Size in bytes
	MimeType     string    `json:"mimetype"`     // Detected content type
	UploadedAt   time.Time `json:"uploadedAt"`   // Time of upload
}

type FilesResponse struct {
	Files []File `json:"files"`
}

type ArchiveRequest struct {
	Filenames []string `json:"filenames"`
}
