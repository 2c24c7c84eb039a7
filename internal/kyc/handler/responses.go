package handler

import "veridoc/internal/kyc"

// VerifyResponse is the HTTP response for POST /kyc/verify. It mirrors the
// audit entry: verdict, failures, and field presence, never field values.
type VerifyResponse struct {
	Status   string   `json:"status"`
	Failures []string `json:"failures"`

	IdentityFieldsPresent []string `json:"identity_fields_present"`
	InvoiceFieldsPresent  []string `json:"invoice_fields_present"`

	Image ImageResponse `json:"image"`
}

// ImageResponse carries the non-identifying ID photo measurements.
type ImageResponse struct {
	LaplacianVariance float64 `json:"laplacian_variance"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

// FromReport converts a verification report to its HTTP shape.
func FromReport(report *kyc.Report) *VerifyResponse {
	return &VerifyResponse{
		Status:                string(report.Result.Status),
		Failures:              report.Result.FailureStrings(),
		IdentityFieldsPresent: report.Identity.PresentFields(),
		InvoiceFieldsPresent:  report.Invoice.PresentFields(),
		Image: ImageResponse{
			LaplacianVariance: report.Sharpness,
			Width:             report.ImageWidth,
			Height:            report.ImageHeight,
		},
	}
}
