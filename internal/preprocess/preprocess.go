package preprocess

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"menulens/internal/domain"
)

const (
	// blurRadius gives a 5x5 smoothing kernel.
	blurRadius = 2.0

	// Adaptive threshold window size and constant offset.
	blockSize       = 11
	thresholdOffset = 2.0

	// closeRadius is the structuring element radius for the closing step.
	// Below 1 the step is a pass-through; raise it to re-enable noise
	// closing on heavily speckled captures.
	closeRadius = 0.0
)

// Binarize converts a photographed menu into a binary image suitable for OCR.
//
// The pipeline is fixed and order matters:
//
//  1. Grayscale conversion using standard luma weighting
//  2. 5x5 Gaussian blur to suppress sensor and compression noise
//  3. Adaptive Gaussian-weighted thresholding (block size 11, offset 2)
//  4. Morphological closing with a 1x1 element (currently a pass-through)
//
// Adaptive thresholding is used instead of a single global cutoff because
// menu photos typically have uneven lighting (glare, shadows) that a global
// threshold would corrupt.
//
// Returns:
//   - *image.Gray: Binary image with pixel values 0 or 255, same dimensions
//     as the input.
//   - error: domain.ErrInvalidImage for nil or zero-dimension input. No
//     other failure path exists.
func Binarize(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, domain.ErrInvalidImage
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, domain.ErrInvalidImage
	}

	gray := toGray(imaging.Grayscale(img))
	smoothed := toGray(blur.Gaussian(gray, blurRadius))
	binary := adaptiveThreshold(smoothed, blockSize, thresholdOffset)
	return closeBinary(binary, closeRadius), nil
}

// adaptiveThreshold binarizes src against a Gaussian-weighted local mean
// computed over a block x block window. A pixel becomes foreground (255)
// when its value exceeds the local mean minus offset.
//
// Sigma for the Gaussian weights is derived from the window size. Border
// pixels use clamped (replicated) edge values. The kernel is separable, so
// the local mean costs O(block) per pixel rather than O(block^2).
func adaptiveThreshold(src *image.Gray, block int, offset float64) *image.Gray {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	kernel := gaussianKernel1D(block)
	r := block / 2

	// Horizontal pass
	tmp := make([][]float64, height)
	for y := 0; y < height; y++ {
		tmp[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for k := -r; k <= r; k++ {
				px := clamp(x+k, 0, width-1)
				sum += float64(src.GrayAt(px+bounds.Min.X, y+bounds.Min.Y).Y) * kernel[k+r]
			}
			tmp[y][x] = sum
		}
	}

	// Vertical pass plus thresholding
	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var mean float64
			for k := -r; k <= r; k++ {
				py := clamp(y+k, 0, height-1)
				mean += tmp[py][x] * kernel[k+r]
			}

			v := float64(src.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			if v > mean-offset {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// closeBinary applies a morphological close (dilate then erode). With a
// sub-pixel radius the element is 1x1 and the image passes through
// unchanged; the hook is kept so the kernel can be widened later without
// touching the pipeline.
func closeBinary(src *image.Gray, radius float64) *image.Gray {
	if radius < 1 {
		return src
	}
	return toGray(effect.Erode(effect.Dilate(src, radius), radius))
}

// gaussianKernel1D builds a normalized 1D Gaussian kernel of the given odd
// size, with sigma auto-derived from the size.
func gaussianKernel1D(size int) []float64 {
	sigma := 0.3*((float64(size)-1)*0.5-1) + 0.8
	r := size / 2

	kernel := make([]float64, size)
	var sum float64
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+r] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// toGray copies any image into an 8-bit grayscale image anchored at (0,0).
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return out
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
