// Package pdfext pulls native text out of invoice PDFs. It decodes the
// text-showing operators of each page's content stream; scanned PDFs with no
// text layer simply yield an empty string.
package pdfext

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// Extractor reads the native text layer of a PDF. The KYC service depends on
// this interface so tests can substitute canned text.
type Extractor interface {
	Text(path string) (string, error)
}

// PDFCPU extracts text via pdfcpu's content-stream access.
type PDFCPU struct{}

func New() *PDFCPU {
	return &PDFCPU{}
}

// Text returns the concatenated text of all pages. Pages whose content
// streams cannot be decoded are skipped rather than failing the document.
func (p *PDFCPU) Text(path string) (string, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}

	var sb strings.Builder
	for page := 1; page <= ctx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		sb.WriteString(decodeContentText(content))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
