package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/office-space-api/api/swagger"
	"github.com/noah-isme/office-space-api/internal/handler"
	"github.com/noah-isme/office-space-api/internal/middleware"
	"github.com/noah-isme/office-space-api/internal/repository"
	"github.com/noah-isme/office-space-api/internal/service"
	"github.com/noah-isme/office-space-api/pkg/config"
	"github.com/noah-isme/office-space-api/pkg/database"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
	"github.com/noah-isme/office-space-api/pkg/export"
	"github.com/noah-isme/office-space-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/office-space-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/office-space-api/pkg/middleware/requestid"
)

// @title Office Space API
// @version 0.1.0
// @description Office occupancy tracking and legacy roster import
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	repo := repository.NewAssignmentRepository(db)
	validate := validator.New()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
		repo = repo.WithMetrics(metricsSvc)
	}

	assignmentSvc := service.NewAssignmentService(repo, validate, logr)
	exportSvc := service.NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	officeHandler := handler.NewOfficeHandler(assignmentSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := repo.Ready(c.Request.Context()); err != nil {
			body := gin.H{"status": "unavailable"}
			if appErrors.FromError(err).Code == appErrors.ErrStoreUnavailable.Code {
				body["hint"] = "run migrate-csv -init to create the schema"
			}
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		metricsHandler := handler.NewMetricsHandler(metricsSvc)
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/offices", officeHandler.List)
		api.POST("/offices/:officeId/occupants", officeHandler.CreateOccupant)
		api.PUT("/occupants/:id", officeHandler.UpdateOccupant)
		api.DELETE("/occupants/:id", officeHandler.DeleteOccupant)

		if cfg.Exports.Enabled {
			api.GET("/offices/export", exportHandler.Roster)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
