package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/config"
	"github.com/davbin/internal/echo"
	"github.com/davbin/internal/middleware"
	"github.com/davbin/internal/webdav"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Logging)
	gin.SetMode(cfg.GetGINMode())

	router := newRouter(cfg, logger)

	srv := &http.Server{
		Addr:           cfg.Server.Address,
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	// Graceful shutdown
	go func() {
		logger.WithFields(logrus.Fields{
			"address":         cfg.Server.Address,
			"webdav_prefix":   cfg.WebDAV.PathPrefix,
			"max_multistatus": cfg.WebDAV.MaxMultistatus,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func newRouter(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	// WebDAV routes
	webdavHandler := webdav.NewHandler(cfg.WebDAV, logger)
	webdavHandler.Register(router.Group(cfg.WebDAV.PathPrefix))
	router.NoRoute(webdavHandler.Fallback)

	// Echo routes
	if cfg.Echo.PathPrefix != "" {
		echo.NewHandler(logger).Register(router.Group(cfg.Echo.PathPrefix))
	}

	return router
}
