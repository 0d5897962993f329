package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/course-compass/api/swagger"
	"github.com/noah-isme/course-compass/internal/catalog"
	"github.com/noah-isme/course-compass/internal/handler"
	"github.com/noah-isme/course-compass/internal/middleware"
	"github.com/noah-isme/course-compass/internal/planner"
	"github.com/noah-isme/course-compass/internal/repository"
	"github.com/noah-isme/course-compass/internal/service"
	"github.com/noah-isme/course-compass/pkg/cache"
	"github.com/noah-isme/course-compass/pkg/config"
	"github.com/noah-isme/course-compass/pkg/database"
	"github.com/noah-isme/course-compass/pkg/export"
	"github.com/noah-isme/course-compass/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-compass/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-compass/pkg/middleware/requestid"
)

// @title Course Compass API
// @version 0.1.0
// @description Course catalog aggregation and schedule expansion service
// @BasePath /api/v1
// @schemes http

const catalogCacheTTL = 15 * time.Minute

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var store catalog.Store = catalog.NewMemoryStore()
	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		cacheRepo = repository.NewCacheRepository(client, catalogCacheTTL, logr)
		defer cacheRepo.Close() //nolint:errcheck
		store = cacheRepo
	}
	store = service.NewCacheService(store, metricsSvc, logr)

	upstream := &http.Client{Timeout: cfg.Upstream.Timeout}
	sfu := catalog.NewSFU(cfg.Providers.SFUBaseURL, upstream, store, logr)
	ubc := catalog.NewUBC(cfg.Providers.UBCBaseURL, cfg.Providers.UBCProxyURL, upstream, store, logr)
	registry := catalog.NewRegistry(sfu, ubc)
	catalogSvc := service.NewCatalogService(registry, metricsSvc, logr)
	selectionSvc := service.NewSelectionService(registry, logr)

	var snapshots *repository.EventStoreRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect database", "error", err)
		}
		snapshots = repository.NewEventStoreRepository(db)
	}

	var calendarSvc *service.CalendarService
	if snapshots != nil {
		calendarSvc = service.NewCalendarService(catalogSvc, snapshots, metricsSvc, nil, logr)
	} else {
		calendarSvc = service.NewCalendarService(catalogSvc, nil, metricsSvc, nil, logr)
	}

	var plannerSvc *service.PlannerService
	if cfg.Planner.Enabled {
		plannerSvc = service.NewPlannerService(planner.NewClient(cfg.Planner, logr), calendarSvc, logr)
	} else {
		plannerSvc = service.NewPlannerService(nil, calendarSvc, logr)
	}

	var icsExp *export.ICSExporter
	var csvExp *export.CSVExporter
	var pdfExp *export.PDFExporter
	if cfg.Exports.Enabled {
		icsExp = export.NewICSExporter()
		csvExp = export.NewCSVExporter()
		pdfExp = export.NewPDFExporter()
	}

	catalogHandler := handler.NewCatalogHandler(catalogSvc, nil)
	if cacheRepo != nil {
		catalogHandler = handler.NewCatalogHandler(catalogSvc, cacheRepo)
	}
	selectionHandler := handler.NewSelectionHandler(selectionSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, icsExp, csvExp, pdfExp)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/providers", catalogHandler.Providers)
		api.GET("/providers/:provider/years", catalogHandler.Years)
		api.GET("/providers/:provider/years/:year/terms", catalogHandler.Terms)
		api.GET("/providers/:provider/terms/:termId/subjects", catalogHandler.Subjects)
		api.GET("/providers/:provider/terms/:termId/subjects/:subject/courses", catalogHandler.Courses)
		api.GET("/providers/:provider/terms/:termId/subjects/:subject/courses/:course/sections", catalogHandler.Sections)
		api.GET("/providers/:provider/outline", catalogHandler.Outline)
		api.DELETE("/providers/:provider/cache", catalogHandler.InvalidateCache)

		api.POST("/selections", selectionHandler.Create)
		api.GET("/selections/:id", selectionHandler.State)
		api.PUT("/selections/:id/:level", selectionHandler.Choose)
		api.DELETE("/selections/:id", selectionHandler.Delete)

		api.GET("/calendars/events", calendarHandler.List)
		api.POST("/calendars/events", calendarHandler.AddManual)
		api.DELETE("/calendars/events/:id", calendarHandler.DeleteEvent)
		api.POST("/calendars/sections", calendarHandler.AddSection)
		api.POST("/calendars/outlines", calendarHandler.AddOutline)
		api.DELETE("/calendars/courses/:courseKey", calendarHandler.DeleteCourse)
		api.PUT("/calendars/snapshot", calendarHandler.Save)
		api.GET("/calendars/snapshot", calendarHandler.Load)
		api.GET("/calendars/export/ics", calendarHandler.ExportICS)
		api.GET("/calendars/export/csv", calendarHandler.ExportCSV)
		api.GET("/calendars/export/pdf", calendarHandler.ExportPDF)

		api.POST("/planner/plan", plannerHandler.Plan)
		api.POST("/planner/apply", plannerHandler.Apply)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "providers", registry.Names())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
