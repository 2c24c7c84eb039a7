package vision

import (
	"image"

	"github.com/disintegration/imaging"
)

// LaplacianVariance returns the variance of the 4-neighbor Laplacian response
// over the grayscale image, a standard focus metric: blurred photos have
// little high-frequency content and score low. Images smaller than 3x3 score
// zero.
func LaplacianVariance(img image.Image) float64 {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	// Grayscale NRGBA has identical channels; read red.
	at := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x*4])
	}

	n := float64((w - 2) * (h - 2))
	var sum, sumSq float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := at(x, y-1) + at(x, y+1) + at(x-1, y) + at(x+1, y) - 4*at(x, y)
			sum += lap
			sumSq += lap * lap
		}
	}

	mean := sum / n
	return sumSq/n - mean*mean
}
