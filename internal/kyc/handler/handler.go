// Package handler wires verification endpoints to the KYC service. It is a
// thin transport layer: uploads land in a scratch dir, the service does the
// work, and the response carries field presence rather than field values.
package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"veridoc/internal/kyc"
	"veridoc/pkg/httputil"
)

// maxUploadBytes bounds the multipart form held in memory plus temp files.
const maxUploadBytes = 32 << 20

// Service defines the verification operation the handler depends on.
type Service interface {
	Verify(ctx context.Context, req kyc.Request) (*kyc.Report, error)
}

// Tailer exposes the last audit entries for demos and smoke checks.
type Tailer interface {
	Tail(n int) ([]string, error)
}

// Handler serves the KYC endpoints.
type Handler struct {
	service Service
	tailer  Tailer
	logger  *slog.Logger
}

// New constructs a Handler. tailer may be nil when no file-backed audit log
// is configured, in which case the tail endpoint reports 404.
func New(service Service, tailer Tailer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, tailer: tailer, logger: logger}
}

// Register mounts the KYC endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/kyc/verify", h.HandleVerify)
	r.Get("/kyc/audit/tail", h.HandleAuditTail)
}

// HandleVerify handles POST /kyc/verify multipart requests with an id_image
// and an invoice_pdf part.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "multipart form required")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	dir, err := os.MkdirTemp("", "veridoc-verify-*")
	if err != nil {
		h.logger.ErrorContext(ctx, "scratch dir creation failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	defer os.RemoveAll(dir)

	imagePath, err := saveUpload(r, "id_image", dir)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "id_image file is required")
		return
	}
	pdfPath, err := saveUpload(r, "invoice_pdf", dir)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "invoice_pdf file is required")
		return
	}

	overrides, err := parseOverrides(r)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	report, err := h.service.Verify(ctx, kyc.Request{
		IDImagePath:    imagePath,
		InvoicePDFPath: pdfPath,
		Overrides:      overrides,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		httputil.WriteError(w, http.StatusUnprocessableEntity, "verification_failed", "could not process the submitted documents")
		return
	}

	h.logger.InfoContext(ctx, "verification served",
		"status", report.Result.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}

// HandleAuditTail handles GET /kyc/audit/tail?n=10.
func (h *Handler) HandleAuditTail(w http.ResponseWriter, r *http.Request) {
	if h.tailer == nil {
		httputil.WriteError(w, http.StatusNotFound, "not_found", "audit log not configured")
		return
	}

	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.WriteError(w, http.StatusBadRequest, "validation_error", "n must be a non-negative integer")
			return
		}
		n = parsed
	}

	lines, err := h.tailer.Tail(n)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "audit tail failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"entries": append([]string{}, lines...)})
}

// saveUpload copies one multipart file part into dir and returns its path.
func saveUpload(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("form file %s: %w", field, err)
	}
	defer file.Close()

	path := filepath.Join(dir, field+filepath.Ext(header.Filename))
	if err := copyToFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func copyToFile(src multipart.File, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

// parseOverrides reads the optional threshold form values.
func parseOverrides(r *http.Request) (kyc.Overrides, error) {
	var o kyc.Overrides

	if raw := r.FormValue("sharpness_threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return o, fmt.Errorf("sharpness_threshold must be a number")
		}
		o.SharpnessThreshold = &v
	}
	if raw := r.FormValue("invoice_max_age_days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return o, fmt.Errorf("invoice_max_age_days must be a non-negative integer")
		}
		o.InvoiceMaxAgeDays = &v
	}
	return o, nil
}
