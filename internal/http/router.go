package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fupdash/backend/internal/config"
	"github.com/fupdash/backend/internal/http/handlers"
	"github.com/fupdash/backend/internal/http/middleware"
	"github.com/fupdash/backend/internal/metrics"
	"github.com/fupdash/backend/internal/service"

	_ "github.com/fupdash/backend/docs"
)

func Router(cfg config.Config, reports *service.ReportService, m *metrics.Metrics, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", middleware.AdminKeyHeader, "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	loc, err := cfg.Location()
	if err != nil {
		logger.Warn().Err(err).Msg("falling back to UTC")
		loc = time.UTC
	}
	h := &handlers.Handler{
		Reports:         reports,
		Store:           reports.Store,
		Validator:       validator.New(),
		Logger:          logger,
		Location:        loc,
		DefaultLanguage: cfg.DefaultLanguage,
		RequestTimeout:  cfg.RequestTimeout,
	}

	r.GET("/healthz", h.Healthz)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/datasets/latest", h.LatestDataset)
		api.GET("/datasets/:id", h.GetDataset)
		api.POST("/datasets/:id/view", h.View)
		api.POST("/datasets/:id/export", h.Export)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/datasets", h.UploadDataset)
		admin.DELETE("/datasets/:id", h.DeleteDataset)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
