package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "dmvcalc/api/swagger" // swagger docs
	"dmvcalc/internal/config"
	"dmvcalc/internal/database"
	"dmvcalc/internal/handler"
	"dmvcalc/internal/i18n"
	"dmvcalc/internal/logger"
	"dmvcalc/internal/metrics"
	"dmvcalc/internal/middleware"
	"dmvcalc/internal/repository"
	"dmvcalc/internal/service"
	"dmvcalc/internal/taxcalc"
	"dmvcalc/internal/websocket"
)

// @title           DMV Calculation API
// @version         1.0
// @description     Validates vehicle records and derives DMV tax totals.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.NewConnection(cfg.DSN(), zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("connected to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	catalog, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		zlog.Fatal("message catalog failed to load", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	processor := taxcalc.NewProcessor(cfg.Rounding)
	secret := []byte(cfg.JWTSecret)

	// Set up dependencies (Repository -> Service -> Handler)
	calcRepo := repository.NewCalculationRepository(db)
	listingRepo := repository.NewListingRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	notifier := &lazyNotifier{}
	calcService := service.NewCalculationService(calcRepo, listingRepo, auditRepo, txManager, processor, m, zlog,
		service.WithNotifier(notifier))
	listingService := service.NewListingService(listingRepo, auditRepo, txManager)

	wsHub := websocket.NewHub(calcService, catalog, zlog)
	notifier.hub = wsHub
	go wsHub.Run(ctx)

	calcHandler := handler.NewCalculationHandler(calcService, catalog, zlog)
	listingHandler := handler.NewListingHandler(listingService)
	auditHandler := handler.NewAuditHandler(service.NewAuditService(calcRepo, auditRepo))

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), logger.Middleware(zlog), middleware.Metrics(m))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "Accept-Language", logger.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws/preview", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	auth := middleware.RequireAuth(secret)
	calcHandler.RegisterRoutes(router.Group(""), auth)
	listingHandler.RegisterRoutes(router.Group(""), auth)
	auditHandler.RegisterRoutes(router.Group(""), auth)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// lazyNotifier breaks the construction cycle between the calculation
// service and the hub, which previews through that same service.
type lazyNotifier struct {
	hub *websocket.Hub
}

func (n *lazyNotifier) NotifySaved(ownerID string, resp service.CalculationResponse) {
	if n.hub != nil {
		n.hub.NotifySaved(ownerID, resp)
	}
}
