package decision

import (
	"time"

	"github.com/shopspring/decimal"

	"veridoc/internal/identity"
)

// Evaluate applies the KYC rules in fixed order and accumulates a failure
// reason per failed rule; it never short-circuits, so one call reports every
// defect at once. The verdict is StatusValid exactly when no rule failed.
//
// Rule order is part of the contract:
//  1. image sharpness against the configured threshold
//  2. CNP presence and checksum
//  3. ID expiry against the reference date
//  4. invoice issue date against the maximum age
//  5. invoice total must parse and be positive
//  6. required invoice fields present (reported once)
func Evaluate(input Input, cfg Config) Result {
	var failures []FailureReason

	ref := cfg.ReferenceDate
	if ref.IsZero() {
		ref = Today()
	}

	if input.Sharpness < cfg.SharpnessThreshold {
		failures = append(failures, FailureImageBlurry)
	}

	if input.Identity.CNP == nil || !identity.ValidCNP(*input.Identity.CNP) {
		failures = append(failures, FailureInvalidCNP)
	}

	if input.Identity.Expiry == nil || input.Identity.Expiry.Before(ref) {
		failures = append(failures, FailureIDExpired)
	}

	if issue := input.Invoice.IssueDate; issue == nil || olderThan(ref, *issue, cfg.InvoiceMaxAgeDays) {
		failures = append(failures, FailureInvoiceTooOld)
	}

	if !positiveTotal(input.Invoice.Total) {
		failures = append(failures, FailureNonPositiveTotal)
	}

	if input.Invoice.Number == nil || input.Invoice.IssueDate == nil || input.Invoice.Total == nil {
		failures = append(failures, FailureMissingInvoiceFields)
	}

	status := StatusValid
	if len(failures) > 0 {
		status = StatusInvalid
	}
	return Result{Status: status, Failures: failures}
}

// olderThan reports whether issue lies more than maxAgeDays before ref.
// Future-dated invoices are not old.
func olderThan(ref, issue time.Time, maxAgeDays int) bool {
	return ref.Sub(issue) > time.Duration(maxAgeDays)*24*time.Hour
}

// positiveTotal parses the normalized total string and requires a value
// strictly greater than zero. A missing or malformed total is non-positive,
// not an error.
func positiveTotal(total *string) bool {
	if total == nil {
		return false
	}
	d, err := decimal.NewFromString(*total)
	if err != nil {
		return false
	}
	return d.IsPositive()
}
