package files

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Yulian302/filestream/archive"
	"github.com/Yulian302/filestream/files/types"
	"github.com/Yulian302/filestream/httperrors"
	"github.com/Yulian302/filestream/logging"
	"github.com/Yulian302/filestream/responses"
	"github.com/Yulian302/filestream/services"
	"github.com/Yulian302/filestream/store"
	"github.com/Yulian302/filestream/streaming"
	"github.com/gin-gonic/gin"
)

const archiveAttachmentName = "files.zip"

type FileHandler struct {
	fileService    services.FileService
	archiveService services.ArchiveService
}

func NewFileHandler(fileService services.FileService, archiveService services.ArchiveService) *FileHandler {
	return &FileHandler{
		fileService:    fileService,
		archiveService: archiveService,
	}
}

// GetVideo godoc
// @Summary      Stream the demo video
// @Description  Stream the configured video file, honoring byte-range requests
// @Tags         files
// @Produce      video/mp4
// @Param        Range  header  string  false  "Byte range, e.g. bytes=0-1023"
// @Success      200  {string}  binary  "Whole file"
// @Success      206  {string}  binary  "Partial content"
// @Failure      404  {object}  httperrors.HTTPError
// @Failure      416  {object}  httperrors.HTTPError
// @Router       /video [get]
func (h *FileHandler) GetVideo(c *gin.Context) {
	src, err := h.fileService.Video()
	if err != nil {
		if errors.Is(err, httperrors.ErrNotFound) {
			httperrors.NotFoundResponse(c, "video not found")
			return
		}
		httperrors.InternalServerErrorResponse(c, "could not open video")
		return
	}

	h.serveRanged(c, src)
}

// DownloadFile godoc
// @Summary      Download an uploaded file
// @Description  Stream an uploaded file as an attachment, honoring byte-range requests
// @Tags         files
// @Produce      octet-stream
// @Param        filename  path    string  true   "Stored filename"
// @Param        Range     header  string  false  "Byte range, e.g. bytes=0-1023"
// @Success      200  {string}  binary  "Whole file"
// @Success      206  {string}  binary  "Partial content"
// @Failure      404  {object}  httperrors.HTTPError
// @Failure      416  {object}  httperrors.HTTPError
// @Router       /download/{filename} [get]
func (h *FileHandler) DownloadFile(c *gin.Context) {
	name := c.Param("filename")

	src, info, err := h.fileService.Descriptor(name)
	if err != nil {
		if errors.Is(err, httperrors.ErrNotFound) || errors.Is(err, httperrors.ErrInvalidFilename) {
			httperrors.NotFoundResponse(c, "file not found")
			return
		}
		httperrors.InternalServerErrorResponse(c, "could not open file")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.OriginalName))
	h.serveRanged(c, src)
}

// ListFiles godoc
// @Summary      List uploaded files
// @Tags         files
// @Produce      json
// @Success      200  {object}  types.FilesResponse
// @Failure      500  {object}  httperrors.HTTPError
// @Router       /files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	infos, err := h.fileService.List()
	if err != nil {
		httperrors.InternalServerErrorResponse(c, "could not list files")
		return
	}

	files := make([]types.File, len(infos))
	for i, info := range infos {
		files[i] = toFileType(info)
	}

	responses.JSONData(c, http.StatusOK, types.FilesResponse{Files: files})
}

// DeleteFile godoc
// @Summary      Delete an uploaded file
// @Tags         files
// @Produce      json
// @Param        filename  path  string  true  "Stored filename"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  httperrors.HTTPError
// @Failure      500  {object}  httperrors.HTTPError
// @Router       /files/{filename} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	name := c.Param("filename")

	if err := h.fileService.Delete(name); err != nil {
		if errors.Is(err, httperrors.ErrNotFound) || errors.Is(err, httperrors.ErrInvalidFilename) {
			httperrors.NotFoundResponse(c, "file not found")
			return
		}
		httperrors.InternalServerErrorResponse(c, "could not delete file")
		return
	}

	responses.JSONSuccess(c, "file deleted")
}

// DownloadZip godoc
// @Summary      Download multiple files as a ZIP archive
// @Description  Stream a ZIP of the named files; missing files are skipped
// @Tags         files
// @Accept       json
// @Produce      application/zip
// @Param        request  body  types.ArchiveRequest  true  "Filenames to archive (max 100)"
// @Success      200  {string}  binary  "Streamed ZIP"
// @Failure      400  {object}  httperrors.HTTPError
// @Failure      404  {object}  httperrors.HTTPError
// @Router       /download-zip [post]
func (h *FileHandler) DownloadZip(c *gin.Context) {
	var req types.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperrors.BadRequestResponse(c, err.Error())
		return
	}

	sources, err := h.archiveService.Resolve(c.Request.Context(), req.Filenames)
	if err != nil {
		switch {
		case errors.Is(err, httperrors.ErrNoFilenames):
			httperrors.BadRequestResponse(c, "no filenames provided")
		case errors.Is(err, httperrors.ErrBatchTooLarge):
			httperrors.BadRequestResponse(c, "too many files requested, maximum is 100")
		case errors.Is(err, httperrors.ErrNoValidFiles):
			httperrors.NotFoundResponse(c, "no valid files found")
		default:
			httperrors.InternalServerErrorResponse(c, "could not prepare archive")
		}
		return
	}

	// The archive length is unknown until it is fully built, so the response
	// starts immediately and streams.
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveAttachmentName))
	c.Status(http.StatusOK)

	if err := archive.StreamZip(c.Request.Context(), c.Writer, sources); err != nil {
		h.logStreamFailure(c, err)
		c.Abort()
	}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  httperrors.HTTPError
// @Router       /healthz [get]
func (h *FileHandler) Health(c *gin.Context) {
	if err := h.fileService.Ping(); err != nil {
		httperrors.InternalServerErrorResponse(c, "uploads storage unavailable")
		return
	}
	responses.JSONSuccess(c, "ok")
}

// serveRanged answers 200, 206, or 416 for src based on the Range header.
func (h *FileHandler) serveRanged(c *gin.Context, src streaming.Source) {
	rng, err := streaming.ParseRange(c.GetHeader("Range"), src.Size())
	if err != nil {
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", src.Size()))
		httperrors.RangeNotSatisfiableResponse(c, "requested range not satisfiable")
		return
	}

	if err := streaming.Serve(c.Request.Context(), c.Writer, src, rng); err != nil {
		h.logStreamFailure(c, err)
		c.Abort()
	}
}

// logStreamFailure records a mid-stream failure. Headers are already on the
// wire at this point, so there is no status code left to send; a client that
// simply went away is logged at debug, everything else is a real error.
func (h *FileHandler) logStreamFailure(c *gin.Context, err error) {
	log := logging.FromContext(c.Request.Context())
	if streaming.IsClientDisconnect(err) {
		log.Debug("client disconnected mid-stream", "error", err)
		return
	}
	log.Error("streaming failed", "error", err)
}

func toFileType(info store.FileInfo) types.File {
	return types.File{
		Filename:     info.StoredName,
		OriginalName: info.OriginalName,
		Size:         info.Size,
		MimeType:     info.MimeType,
		UploadedAt:   info.UploadedAt,
	}
}
