package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Word is a single recognized token with its OCR confidence.
type Word struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the engine's certainty for this word (0-100).
	Confidence float64 `json:"confidence"`
}

// Result is the output of one OCR pass under a single profile.
type Result struct {
	// Text is all recognized text with original spacing and newlines.
	Text string `json:"text"`

	// Words contains individual tokens with confidence scores. May be empty
	// if word-level extraction fails (text will still be in Text).
	Words []Word `json:"words"`
}

// Profile describes one page-segmentation configuration to run OCR under.
type Profile struct {
	Name string
	Mode gosseract.PageSegMode
}

// DefaultProfiles are the configurations tried in order: a uniform block of
// text, a single column of text, and fully automatic page segmentation.
// Menus vary wildly in layout, so each assumption gets a chance and the
// selector keeps whichever scored best.
var DefaultProfiles = []Profile{
	{Name: "uniform-block", Mode: gosseract.PSM_SINGLE_BLOCK},
	{Name: "single-column", Mode: gosseract.PSM_SINGLE_COLUMN},
	{Name: "auto", Mode: gosseract.PSM_AUTO},
}

// Engine runs OCR over an image file under one configuration profile.
//
// It is injected into the Selector so tests can substitute a fake engine
// with canned results or simulated failures.
type Engine interface {
	Recognize(imagePath string, profile Profile) (*Result, error)
}

// TesseractEngine implements Engine using native Tesseract bindings.
//
// Each Recognize call creates and closes its own gosseract client; the
// client is not safe for concurrent reuse and requests own their pipeline
// state exclusively.
type TesseractEngine struct {
	// Language is the Tesseract language code, e.g. "eng". The matching
	// traineddata must be installed on the system.
	Language string
}

// NewTesseractEngine creates a Tesseract-backed Engine. An empty language
// defaults to English.
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{Language: language}
}

// Recognize performs OCR on the image at imagePath under the given profile.
//
// Returns both the full text and per-word confidences. If word-level
// bounding box extraction fails (which can happen with some Tesseract
// configurations), the full text is still returned with an empty Words
// slice, which scores as zero confidence.
func (e *TesseractEngine) Recognize(imagePath string, profile Profile) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(profile.Mode); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &Result{Text: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{Text: box.Word, Confidence: box.Confidence})
	}

	return &Result{Text: text, Words: words}, nil
}

// WriteTempPNG saves an image to a temporary PNG file and returns its path.
//
// Tesseract reads images from disk, so the binarized frame makes one round
// trip through the filesystem per request.
//
// IMPORTANT: The caller is responsible for deleting the file with
// os.Remove() after OCR completes.
func WriteTempPNG(img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "menulens-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return "", err
	}
	return tmpFile.Name(), nil
}
