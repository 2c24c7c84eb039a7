// Package kyc is the composition root of the verification pipeline: it wires
// the image, OCR, and PDF collaborators to the pure extractors and the rule
// evaluator, and emits one audit event per run.
package kyc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"veridoc/internal/audit"
	"veridoc/internal/decision"
	"veridoc/internal/identity"
	"veridoc/internal/invoice"
	"veridoc/internal/kyc/metrics"
	"veridoc/internal/ocr"
	"veridoc/internal/pdfext"
	"veridoc/internal/vision"
)

// Sentinel errors let callers map pipeline faults to their own exit codes
// or HTTP statuses.
var (
	ErrImageUnreadable = errors.New("id image unreadable")
	ErrOCRFailed       = errors.New("ocr failed")
)

// Service runs the verification pipeline. The extractors and the rule
// evaluator are pure; everything stateful enters through these dependencies.
type Service struct {
	engine  ocr.Engine
	pdf     pdfext.Extractor
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	config  decision.Config
}

// New constructs a Service. logger and m may be nil; cfg zero values fall
// back to the defaults at evaluation time.
func New(engine ocr.Engine, pdf pdfext.Extractor, publisher *audit.Publisher, logger *slog.Logger, m *metrics.Metrics, cfg decision.Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine:  engine,
		pdf:     pdf,
		audit:   publisher,
		logger:  logger,
		metrics: m,
		config:  cfg,
	}
}

// Request identifies the two input documents for one verification.
type Request struct {
	IDImagePath    string
	InvoicePDFPath string

	// Overrides holds per-call thresholds; zero members inherit the
	// service configuration.
	Overrides Overrides
}

// Overrides carries optional per-call threshold values.
type Overrides struct {
	SharpnessThreshold *float64
	InvoiceMaxAgeDays  *int
}

// Report is the outcome of one verification run.
type Report struct {
	Result   decision.Result
	Identity identity.Fields
	Invoice  invoice.Fields

	Sharpness   float64
	ImageWidth  int
	ImageHeight int
}

// Verify runs the full pipeline. Extraction misses and rule failures are
// normal outcomes carried in the Report; only collaborator faults (unreadable
// image, OCR engine failure) return an error.
func (s *Service) Verify(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveVerify(time.Since(start)) }()

	img, err := vision.Load(req.IDImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageUnreadable, req.IDImagePath, err)
	}

	sharpStart := time.Now()
	sharpness := vision.LaplacianVariance(img)
	s.metrics.ObserveStage("sharpness", time.Since(sharpStart))

	bounds := img.Bounds()
	s.logger.InfoContext(ctx, "ID image loaded",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"laplacian_variance", sharpness,
	)

	// The two extractions are independent; run them in parallel.
	var idFields identity.Fields
	var invFields invoice.Fields

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ocrStart := time.Now()
		text, err := s.recognizeID(gctx, img)
		s.metrics.ObserveStage("ocr", time.Since(ocrStart))
		if err != nil {
			return err
		}
		idFields = identity.Extract(text)
		return nil
	})

	g.Go(func() error {
		pdfStart := time.Now()
		text, err := s.pdf.Text(req.InvoicePDFPath)
		s.metrics.ObserveStage("pdf_text", time.Since(pdfStart))
		if err != nil {
			// An unreadable or scanned-only PDF means no fields, not a
			// failed verification; the rules report the absence.
			s.logger.WarnContext(gctx, "invoice text extraction failed",
				"path", req.InvoicePDFPath,
				"error", err,
			)
			text = ""
		}
		invFields = invoice.Extract(text)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cfg := s.effectiveConfig(req.Overrides)
	result := decision.Evaluate(decision.Input{
		Identity:  idFields,
		Invoice:   invFields,
		Sharpness: sharpness,
	}, cfg)

	s.metrics.IncrementVerdict(string(result.Status))
	for _, f := range result.Failures {
		s.metrics.IncrementFailure(string(f))
	}

	s.logger.InfoContext(ctx, "verification complete",
		"status", result.Status,
		"failures", result.FailureStrings(),
		"id_fields", idFields.PresentFields(),
		"invoice_fields", invFields.PresentFields(),
	)

	if s.audit != nil {
		event := audit.Event{
			Name:           audit.EventKYCVerdict,
			Status:         string(result.Status),
			Failures:       result.FailureStrings(),
			IdentityFields: idFields.PresentFields(),
			InvoiceFields:  invFields.PresentFields(),
			Image: audit.ImageMetrics{
				LaplacianVariance: sharpness,
				Width:             bounds.Dx(),
				Height:            bounds.Dy(),
			},
		}
		if err := s.audit.Emit(ctx, event); err != nil {
			// The verdict stands even when the trail write fails.
			s.logger.ErrorContext(ctx, "audit emit failed", "error", err)
		}
	}

	return &Report{
		Result:      result,
		Identity:    idFields,
		Invoice:     invFields,
		Sharpness:   sharpness,
		ImageWidth:  bounds.Dx(),
		ImageHeight: bounds.Dy(),
	}, nil
}

// recognizeID enhances the ID photo and runs the OCR engine over it.
func (s *Service) recognizeID(ctx context.Context, img image.Image) (string, error) {
	enhanced := vision.EnhanceForOCR(img)

	path, cleanup, err := vision.SaveTemp(enhanced)
	if err != nil {
		return "", err
	}
	defer cleanup()

	text, err := s.engine.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	return text, nil
}

// effectiveConfig applies per-call overrides on top of the service defaults.
func (s *Service) effectiveConfig(o Overrides) decision.Config {
	cfg := s.config
	if cfg.SharpnessThreshold == 0 {
		cfg.SharpnessThreshold = decision.DefaultSharpnessThreshold
	}
	if cfg.InvoiceMaxAgeDays == 0 {
		cfg.InvoiceMaxAgeDays = decision.DefaultInvoiceMaxAgeDays
	}
	if cfg.ReferenceDate.IsZero() {
		cfg.ReferenceDate = decision.Today()
	}
	if o.SharpnessThreshold != nil {
		cfg.SharpnessThreshold = *o.SharpnessThreshold
	}
	if o.InvoiceMaxAgeDays != nil {
		cfg.InvoiceMaxAgeDays = *o.InvoiceMaxAgeDays
	}
	return cfg
}
