package main

import (
	"log"
	"strings"
	"time"

	"github.com/Yulian302/filestream/files"
	"github.com/Yulian302/filestream/logging"
	"github.com/Yulian302/filestream/middleware"
	"github.com/Yulian302/filestream/ratelimit"
	"github.com/Yulian302/filestream/routers"
	"github.com/Yulian302/filestream/tracing"
	"github.com/Yulian302/filestream/uploads"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func BuildRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	applyCors(r, app)
	applyLogging(r, app)
	applyRateLimiting(r, app)
	applyTracing(r, app)
	applySwagger(r, app)

	registerRoutes(r, app.Services)

	return r
}

func applyCors(r *gin.Engine, app *App) {
	origins := strings.Split(app.Config.CorsOrigins, ",")
	r.Use(cors.New(
		cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Range"},
			ExposeHeaders:    []string{"Content-Range", "Accept-Ranges", "Content-Disposition"},
			AllowCredentials: true,
		},
	))
}

func applyLogging(r *gin.Engine, app *App) {
	r.Use(logging.LoggerMiddleware(app.Logger))
}

func applyRateLimiting(r *gin.Engine, app *App) {
	if app.Redis == nil {
		return
	}

	rateLimiter := ratelimit.NewRedisRateLimiter(app.Redis)
	r.Use(middleware.RateLimiterMiddleware(rateLimiter, 100, time.Minute))
}

func applyTracing(r *gin.Engine, app *App) {
	if !app.Config.Tracing {
		return
	}

	tp, err := tracing.StartTracing("filestream")
	if err != nil {
		log.Fatalf("failed to start tracing: %v", err)
	}

	app.TracerProvider = tp
	r.Use(otelgin.Middleware("filestream"))
}

func applySwagger(r *gin.Engine, app *App) {
	if app.Config.Env == "PROD" {
		return
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func registerRoutes(r *gin.Engine, s *Services) {
	routers.RegisterFileRoutes(
		files.NewFileHandler(s.Files, s.Archive),
		r,
	)

	routers.RegisterUploadRoutes(
		uploads.NewUploadsHandler(s.Uploads),
		r,
	)
}
