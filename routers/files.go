package routers

import (
	"github.com/Yulian302/filestream/files"
	"github.com/gin-gonic/gin"
)

func RegisterFileRoutes(h *files.FileHandler, route *gin.Engine) {
	route.GET("/healthz", h.Health)
	route.GET("/video", h.GetVideo)
	route.GET("/download/:filename", h.DownloadFile)
	route.POST("/download-zip", h.DownloadZip)

	group := route.Group("/files")
	group.GET("", h.ListFiles)
	group.DELETE("/:filename", h.DeleteFile)
}
