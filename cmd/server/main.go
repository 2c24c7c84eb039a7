package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"veridoc/internal/audit"
	"veridoc/internal/decision"
	"veridoc/internal/kyc"
	kychandler "veridoc/internal/kyc/handler"
	"veridoc/internal/kyc/metrics"
	"veridoc/internal/ocr"
	"veridoc/internal/pdfext"
	"veridoc/internal/platform/config"
	"veridoc/internal/platform/httpserver"
	"veridoc/internal/platform/logger"
	httptransport "veridoc/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	auditStore := audit.NewJSONLStore(cfg.AuditLogPath)

	service := kyc.New(
		ocr.NewTesseract(cfg.TesseractPath, cfg.OCRLanguages),
		pdfext.New(),
		audit.NewPublisher(auditStore),
		log,
		metrics.New(),
		decision.Config{
			SharpnessThreshold: cfg.SharpnessThreshold,
			InvoiceMaxAgeDays:  cfg.InvoiceMaxAgeDays,
		},
	)

	handler := kychandler.New(service, auditStore, log)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting veridoc", "addr", cfg.Addr, "audit_log", cfg.AuditLogPath)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
