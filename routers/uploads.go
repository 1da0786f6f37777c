package routers

import (
	"github.com/Yulian302/filestream/uploads"
	"github.com/gin-gonic/gin"
)

func RegisterUploadRoutes(h *uploads.UploadsHandler, route *gin.Engine) {
	route.POST("/upload", h.UploadFile)
	route.POST("/upload-multiple", h.UploadMultiple)
}
