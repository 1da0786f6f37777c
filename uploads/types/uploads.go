package types

import "time"

type UploadedFile struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimetype"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type MultiUploadResponse struct {
	Files []UploadedFile `json:"files"`
	Count int            `json:"count"`
}
