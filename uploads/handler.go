package uploads

import (
	"errors"
	"net/http"

	"github.com/Yulian302/filestream/httperrors"
	"github.com/Yulian302/filestream/services"
	"github.com/Yulian302/filestream/store"
	uploadstypes "github.com/Yulian302/filestream/uploads/types"
	"github.com/gin-gonic/gin"
)

type UploadsHandler struct {
	uploadService services.UploadService
}

func NewUploadsHandler(uploadService services.UploadService) *UploadsHandler {
	return &UploadsHandler{
		uploadService: uploadService,
	}
}

// UploadFile godoc
// @Summary      Upload a single file
// @Description  Accept one multipart file part, stream it to disk, and confirm only after the write is durable
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload (max 100 MB)"
// @Success      200  {object}  uploadstypes.UploadedFile
// @Failure      400  {object}  httperrors.HTTPError
// @Failure      408  {object}  httperrors.HTTPError
// @Failure      500  {object}  httperrors.HTTPError
// @Router       /upload [post]
func (h *UploadsHandler) UploadFile(c *gin.Context) {
	mr, err := c.Request.MultipartReader()
	if err != nil {
		httperrors.BadRequestResponse(c, "expected a multipart request body")
		return
	}

	info, err := h.uploadService.IngestSingle(c.Request.Context(), mr)
	if err != nil {
		h.writeIngestError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUploadedFile(info))
}

// UploadMultiple godoc
// @Summary      Upload multiple files
// @Description  Accept any number of multipart file parts and store each one
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Files to upload (max 100 MB each)"
// @Success      200  {object}  uploadstypes.MultiUploadResponse
// @Failure      400  {object}  httperrors.HTTPError
// @Failure      408  {object}  httperrors.HTTPError
// @Failure      500  {object}  httperrors.HTTPError
// @Router       /upload-multiple [post]
func (h *UploadsHandler) UploadMultiple(c *gin.Context) {
	mr, err := c.Request.MultipartReader()
	if err != nil {
		httperrors.BadRequestResponse(c, "expected a multipart request body")
		return
	}

	infos, err := h.uploadService.IngestMany(c.Request.Context(), mr)
	if err != nil {
		h.writeIngestError(c, err)
		return
	}

	files := make([]uploadstypes.UploadedFile, len(infos))
	for i, info := range infos {
		files[i] = toUploadedFile(info)
	}

	c.JSON(http.StatusOK, uploadstypes.MultiUploadResponse{
		Files: files,
		Count: len(files),
	})
}

// writeIngestError maps an ingest failure to exactly one terminal response.
func (h *UploadsHandler) writeIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, httperrors.ErrNoFile), errors.Is(err, httperrors.ErrEmptyFilename):
		httperrors.BadRequestResponse(c, "no file provided")
	case errors.Is(err, httperrors.ErrFileTooLarge):
		httperrors.BadRequestResponse(c, "file exceeds the maximum allowed size")
	case errors.Is(err, httperrors.ErrUploadTimeout):
		httperrors.TimeoutResponse(c, "upload timed out")
	default:
		httperrors.InternalServerErrorResponse(c, "could not store upload")
	}
}

func toUploadedFile(info store.FileInfo) uploadstypes.UploadedFile {
	return uploadstypes.UploadedFile{
		Filename:     info.StoredName,
		OriginalName: info.OriginalName,
		Size:         info.Size,
		MimeType:     info.MimeType,
		UploadedAt:   info.UploadedAt,
	}
}
