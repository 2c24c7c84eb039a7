// Command kyccheck runs one verification from the command line: an ID image
// plus an invoice PDF in, a verdict and a JSONL audit entry out.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"veridoc/internal/audit"
	"veridoc/internal/decision"
	"veridoc/internal/kyc"
	"veridoc/internal/ocr"
	"veridoc/internal/pdfext"
	"veridoc/internal/platform/config"
	"veridoc/internal/platform/logger"
)

// Exit codes mirror the failure points of the pipeline so scripts can tell
// missing inputs from engine faults apart.
const (
	exitOK           = 0
	exitMissingInput = 2
	exitBadImage     = 3
	exitOCRFailure   = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	idImage := flag.String("id-image", "ci.jpg", "path to the ID image")
	invoicePDF := flag.String("invoice-pdf", "Factura.pdf", "path to the invoice PDF")
	logPath := flag.String("log-path", cfg.AuditLogPath, "path to the JSONL audit log")
	sharpness := flag.Float64("sharpness-threshold", cfg.SharpnessThreshold, "minimum Laplacian variance of the ID photo")
	maxAge := flag.Int("invoice-max-age-days", cfg.InvoiceMaxAgeDays, "maximum accepted invoice age in days")
	flag.Parse()

	for _, path := range []string{*idImage, *invoicePDF} {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "input not found: %s\n", path)
			return exitMissingInput
		}
	}

	log := logger.New(cfg.LogLevel)
	store := audit.NewJSONLStore(*logPath)

	service := kyc.New(
		ocr.NewTesseract(cfg.TesseractPath, cfg.OCRLanguages),
		pdfext.New(),
		audit.NewPublisher(store),
		log,
		nil,
		decision.Config{
			SharpnessThreshold: *sharpness,
			InvoiceMaxAgeDays:  *maxAge,
		},
	)

	report, err := service.Verify(context.Background(), kyc.Request{
		IDImagePath:    *idImage,
		InvoicePDFPath: *invoicePDF,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
		if errors.Is(err, kyc.ErrImageUnreadable) {
			return exitBadImage
		}
		return exitOCRFailure
	}

	fmt.Printf("%s | failures=%v\n", report.Result.Status, report.Result.FailureStrings())
	fmt.Printf("audit log written to %s\n", *logPath)
	return exitOK
}
