// Package audit records one append-only entry per verification. Entries are
// deliberately PII-free: they carry field presence, never field values.
package audit

import "time"

// EventKYCVerdict is the event name written for every completed verification.
const EventKYCVerdict = "kyc_verdict"

// ImageMetrics captures the non-identifying measurements of the ID photo.
type ImageMetrics struct {
	LaplacianVariance float64 `json:"laplacian_variance"`
	Width             int     `json:"image_width"`
	Height            int     `json:"image_height"`
}

// Event is one audit entry. Keep it transport-agnostic so stores and sinks
// can fan out.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Name      string    `json:"event"`

	Status   string   `json:"status"`
	Failures []string `json:"failures"`

	// Field-presence lists only; the extracted values never leave the
	// verification call.
	IdentityFields []string `json:"id_fields_present"`
	InvoiceFields  []string `json:"invoice_fields_present"`

	Image ImageMetrics `json:"metrics"`
}
