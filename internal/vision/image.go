// Package vision wraps the image work done before OCR: loading the ID photo,
// measuring its sharpness, and enhancing it so the OCR engine has a fair
// chance on low-contrast scans.
package vision

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Load reads an image from disk in any format imaging understands.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, nil
}

// EnhanceForOCR prepares an ID photo for text recognition: grayscale for
// contrast, a contrast boost, and mild sharpening.
func EnhanceForOCR(img image.Image) *image.NRGBA {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 20)
	out = imaging.Sharpen(out, 1.0)
	return out
}

// SaveTemp writes img as a PNG into a fresh temp file and returns its path
// with a cleanup func. OCR engines consume files, not in-memory images.
func SaveTemp(img image.Image) (string, func(), error) {
	dir, err := os.MkdirTemp("", "veridoc-ocr-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(dir, "enhanced.png")
	if err := imaging.Save(img, path); err != nil {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("save enhanced image: %w", err)
	}
	return path, func() { os.RemoveAll(dir) }, nil
}
