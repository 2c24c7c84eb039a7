// Package decision applies the KYC rule set to extracted document fields and
// an image sharpness score. Evaluation is pure domain logic: no I/O, no side
// effects, deterministic failure ordering.
package decision

import (
	"time"

	"veridoc/internal/identity"
	"veridoc/internal/invoice"
)

// Status is the final KYC verdict.
type Status string

const (
	StatusValid   Status = "KYC_VALID"
	StatusInvalid Status = "KYC_INVALID"
)

// FailureReason identifies one failed rule. Values are stable: they appear in
// audit entries and API responses.
type FailureReason string

const (
	FailureImageBlurry          FailureReason = "image_blurry"
	FailureInvalidCNP           FailureReason = "invalid_cnp"
	FailureIDExpired            FailureReason = "id_expired"
	FailureInvoiceTooOld        FailureReason = "invoice_too_old"
	FailureNonPositiveTotal     FailureReason = "non_positive_total"
	FailureMissingInvoiceFields FailureReason = "missing_required_fields"
)

// Input groups the signals considered by the rule evaluator.
type Input struct {
	Identity  identity.Fields
	Invoice   invoice.Fields
	Sharpness float64
}

// Config holds the thresholds for one evaluation. It is immutable per call.
type Config struct {
	// SharpnessThreshold is the minimum acceptable Laplacian variance of
	// the ID photo.
	SharpnessThreshold float64

	// InvoiceMaxAgeDays is the maximum accepted age of the invoice issue
	// date, in days.
	InvoiceMaxAgeDays int

	// ReferenceDate anchors the expiry and age rules. Zero means the
	// current UTC date.
	ReferenceDate time.Time
}

const (
	DefaultSharpnessThreshold = 80.0
	DefaultInvoiceMaxAgeDays  = 90
)

// DefaultConfig returns the production thresholds anchored at today.
func DefaultConfig() Config {
	return Config{
		SharpnessThreshold: DefaultSharpnessThreshold,
		InvoiceMaxAgeDays:  DefaultInvoiceMaxAgeDays,
		ReferenceDate:      Today(),
	}
}

// Today returns the current UTC date at midnight.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// Result is the verdict for one evaluation. Status is StatusInvalid exactly
// when Failures is non-empty, and Failures preserves rule-evaluation order.
type Result struct {
	Status   Status
	Failures []FailureReason
}

// FailureStrings returns the failure list as plain strings for logging and
// audit serialization.
func (r Result) FailureStrings() []string {
	out := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		out[i] = string(f)
	}
	return out
}
