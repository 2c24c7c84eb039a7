// Package ocr invokes the locally installed Tesseract engine. Which binary to
// run is configuration resolved before the core ever sees text; nothing in
// here inspects or validates the recognized content.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Engine recognizes text in an image file. The KYC service depends on this
// interface so tests can substitute canned text.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Tesseract shells out to the tesseract binary.
type Tesseract struct {
	binary    string
	languages string
}

// NewTesseract builds an engine around the given binary path (empty means
// "tesseract" on PATH) and language set.
func NewTesseract(binary, languages string) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	if languages == "" {
		languages = "ron+eng"
	}
	return &Tesseract{binary: binary, languages: languages}
}

// Recognize runs one OCR pass and returns the raw UTF-8 text. Page
// segmentation mode 6 ("assume a single uniform block of text") works best
// for card layouts.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, t.binary, imagePath, "stdout", "-l", t.languages, "--psm", "6")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract %s: %w (%s)", imagePath, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.String(), nil
}
