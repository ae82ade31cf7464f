// Package ocr wraps the Tesseract OCR engine (via gosseract/v2) and selects
// the best extraction across several page-segmentation profiles.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Additional languages use their Tesseract codes ("deu", "fra", "spa", ...)
// and require the matching traineddata package.
//
// # Profile selection
//
// Menu photographs do not obey one layout. The Selector runs the engine
// under three page-segmentation assumptions (uniform block, single column,
// automatic), scores each profile by the mean confidence of its positively
// scored words, and keeps the best. Individual profile failures are skipped;
// only a total failure, or a whitespace-only winner, surfaces as
// domain.ErrNoTextDetected.
//
// # Temporary files
//
// Tesseract consumes file paths, so callers stage in-memory images with
// WriteTempPNG and remove the file after recognition. Ensure the system
// temp directory has space for image files.
package ocr
