package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vivek-boini/furniture/internal/config"
	"github.com/vivek-boini/furniture/internal/es"
	"github.com/vivek-boini/furniture/internal/events"
	"github.com/vivek-boini/furniture/internal/handlers"
	"github.com/vivek-boini/furniture/internal/logging"
	"github.com/vivek-boini/furniture/internal/media"
	httpserver "github.com/vivek-boini/furniture/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	errorLog := logging.NewErrorLog(cfg.ErrorLogFile)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if err := config.SeedSuperAdmin(db, cfg, logger); err != nil {
		log.Fatalf("superadmin seed failed: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaAddress)

	esClient, err := es.NewClient(cfg)
	if err != nil {
		// Search is optional; the catalog works without it.
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
	}

	uploader, err := media.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("cloudinary init failed: %v", err)
	}

	jwtSecret := []byte(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"https://*.onrender.com",
		},
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	defaultErrorHandler := e.DefaultHTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code >= http.StatusInternalServerError {
			errorLog.Error("server_fault",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err,
			)
		}
		defaultErrorHandler(err, c)
	}

	productHandler := &handlers.ProductHandler{DB: db, Producer: producer, ES: esClient}
	if uploader != nil {
		productHandler.Uploader = uploader
	}

	deps := httpserver.Deps{
		JWTSecret:       jwtSecret,
		AuthHandler:     &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret},
		ProductHandler:  productHandler,
		OrderHandler:    &handlers.OrderHandler{DB: db, Producer: producer},
		SettingsHandler: &handlers.SettingsHandler{DB: db, Producer: producer},
		AdminHandler:    &handlers.AdminHandler{DB: db},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
