package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homestay-backoffice/internal/config"
	httpapi "homestay-backoffice/internal/http"
	"homestay-backoffice/internal/logger"
	"homestay-backoffice/internal/repository"
	"homestay-backoffice/internal/service"
	"homestay-backoffice/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "homestay-backoffice")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Session KV: Redis when configured, process-local otherwise.
	var kv store.KV
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
		log.Info("using Redis session store", zap.String("addr", cfg.Redis.Addr))
	} else {
		kv = store.NewMemoryKV()
		log.Info("using in-memory session store")
	}

	// Booking store: Google Sheets when configured, local workbook otherwise.
	var sheet repository.BookingSheet
	if cfg.Sheets.Enabled {
		sheet = repository.NewSheetsClient(repository.SheetsOptions{
			BaseURL:       cfg.Sheets.BaseURL,
			APIKey:        cfg.Sheets.APIKey,
			AccessToken:   cfg.Sheets.AccessToken,
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			Worksheet:     cfg.Sheets.Worksheet,
			SheetGID:      cfg.Sheets.SheetGID,
		}, log)
		log.Info("using Google Sheets booking store",
			zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID),
			zap.String("worksheet", cfg.Sheets.Worksheet),
		)
	} else {
		sheet = repository.NewExcelStore(cfg.Excel.Path, cfg.Excel.Sheet, log)
		log.Info("using local Excel booking store", zap.String("path", cfg.Excel.Path))
	}

	bookings := service.NewBookingService(sheet, log)
	dashboard := service.NewDashboardService(bookings, cfg.Capacity, log)

	var extractor service.BookingExtractor
	if cfg.Gemini.APIKey != "" {
		extractor = service.NewGeminiClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
		log.Info("booking extraction enabled", zap.String("model", cfg.Gemini.Model))
	}

	sessions := httpapi.NewSessionStore(kv, cfg.AdminPassword, cfg.SessionTTL)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(sessions, log))
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(dashboard, log), sessions)
	router.RegisterBookingRoutes(httpapi.NewBookingHandler(bookings, log), sessions)
	router.RegisterCalendarRoutes(httpapi.NewCalendarHandler(bookings, cfg.Capacity, log), sessions)
	router.RegisterExtractRoutes(httpapi.NewExtractHandler(extractor, log), sessions)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	// Fresh context: ctx is cancelled by now and would abort the drain.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
