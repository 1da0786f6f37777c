package httperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound             = errors.New("file not found")
	ErrRangeNotSatisfiable  = errors.New("requested range not satisfiable")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrEmptyFilename        = errors.New("file part has no filename")
	ErrNoFile               = errors.New("no file provided")
	ErrUploadTimeout        = errors.New("upload timed out")
	ErrNoFilenames          = errors.New("no filenames provided")
	ErrNoValidFiles         = errors.New("no valid files found")
	ErrBatchTooLarge        = errors.New("too many files requested")
	ErrInvalidFilename      = errors.New("invalid filename")
	ErrInternalServer       = errors.New("internal server error")
)

// HTTPError is the JSON shape of every error response.
type HTTPError struct {
	Error string `json:"error"`
}

func BadRequestResponse(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, HTTPError{Error: msg})
}

func NotFoundResponse(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, HTTPError{Error: msg})
}

func TimeoutResponse(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusRequestTimeout, HTTPError{Error: msg})
}

func RangeNotSatisfiableResponse(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusRequestedRangeNotSatisfiable, HTTPError{Error: msg})
}

func InternalServerErrorResponse(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPError{Error: msg})
}

func TooManyRequestsResponse(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, HTTPError{Error: msg})
}
