// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"

	"veridoc/internal/decision"
)

// Config captures server and pipeline level configuration.
type Config struct {
	Addr     string
	LogLevel string

	// TesseractPath locates the OCR binary; empty means "tesseract" on
	// PATH. The engine never probes the filesystem itself.
	TesseractPath string
	OCRLanguages  string

	AuditLogPath string

	SharpnessThreshold float64
	InvoiceMaxAgeDays  int
}

// FromEnv reads VERIDOC_* environment variables, falling back to sensible
// development defaults.
func FromEnv() Config {
	return Config{
		Addr:               envOr("VERIDOC_ADDR", ":8080"),
		LogLevel:           envOr("VERIDOC_LOG_LEVEL", "info"),
		TesseractPath:      os.Getenv("VERIDOC_TESSERACT"),
		OCRLanguages:       envOr("VERIDOC_OCR_LANGUAGES", "ron+eng"),
		AuditLogPath:       envOr("VERIDOC_AUDIT_LOG", "logs/kyc_log.jsonl"),
		SharpnessThreshold: envFloatOr("VERIDOC_SHARPNESS_THRESHOLD", decision.DefaultSharpnessThreshold),
		InvoiceMaxAgeDays:  envIntOr("VERIDOC_INVOICE_MAX_AGE_DAYS", decision.DefaultInvoiceMaxAgeDays),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
