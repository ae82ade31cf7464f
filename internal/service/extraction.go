package service

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"

	"menulens/internal/domain"
	"menulens/internal/menu"
	"menulens/internal/ocr"
	"menulens/internal/preprocess"
	"menulens/internal/translate"
)

// DefaultTargetLanguage is the no-op translation target.
const DefaultTargetLanguage = "en"

// UnknownLanguage is reported when language detection is unavailable.
const UnknownLanguage = "unknown"

// Extractor defines the menu extraction contract.
type Extractor interface {
	Extract(ctx context.Context, img image.Image, targetLang string) (*domain.ExtractionResult, error)
}

// ExtractionService runs the full pipeline for one request: preprocessing,
// best-of-N OCR selection, language detection, segmentation, and optional
// translation. It holds no per-request state; every request owns its own
// image buffers and temp file exclusively.
type ExtractionService struct {
	selector   *ocr.Selector
	detector   translate.Detector
	translator translate.Translator
}

// NewExtractionService creates an ExtractionService with injected detection
// and translation backends.
func NewExtractionService(selector *ocr.Selector, detector translate.Detector, translator translate.Translator) *ExtractionService {
	return &ExtractionService{
		selector:   selector,
		detector:   detector,
		translator: translator,
	}
}

// Extract processes a decoded menu image and returns structured results.
//
// Only two failures abort the pipeline: domain.ErrInvalidImage from
// preprocessing and domain.ErrNoTextDetected from OCR selection. Language
// detection and translation are best-effort and degrade gracefully.
func (s *ExtractionService) Extract(ctx context.Context, img image.Image, targetLang string) (*domain.ExtractionResult, error) {
	if targetLang == "" {
		targetLang = DefaultTargetLanguage
	}

	binary, err := preprocess.Binarize(img)
	if err != nil {
		return nil, err
	}

	// Tesseract reads from disk; the temp file lives for this request only.
	tmpPath, err := ocr.WriteTempPNG(binary)
	if err != nil {
		return nil, fmt.Errorf("staging image for OCR: %w", err)
	}
	defer os.Remove(tmpPath)

	best, err := s.selector.SelectBest(tmpPath)
	if err != nil {
		return nil, err
	}

	detected := s.detectLanguage(ctx, best.Text)
	items := menu.Segment(best.Text)

	if targetLang != DefaultTargetLanguage && detected != targetLang {
		s.translateItems(ctx, items, targetLang)
	}

	return &domain.ExtractionResult{
		DetectedLanguage: detected,
		TargetLanguage:   targetLang,
		Confidence:       best.MeanConfidence,
		RawText:          best.Text,
		Items:            items,
	}, nil
}

// detectLanguage never fails the pipeline; any backend error falls back to
// UnknownLanguage.
func (s *ExtractionService) detectLanguage(ctx context.Context, text string) string {
	lang, err := s.detector.Detect(ctx, text)
	if err != nil {
		log.Printf("extraction: language detection failed: %v", err)
		return UnknownLanguage
	}
	return lang
}

// translateItems fills each item's Translations map for the name and
// description fields that are present.
func (s *ExtractionService) translateItems(ctx context.Context, items []domain.MenuItem, targetLang string) {
	for i := range items {
		translations := make(map[string]string)
		if items[i].Name != "" {
			translations["name_translated"] = s.translateText(ctx, items[i].Name, targetLang)
		}
		if items[i].Description != "" {
			translations["description_translated"] = s.translateText(ctx, items[i].Description, targetLang)
		}
		if len(translations) > 0 {
			items[i].Translations = translations
		}
	}
}

// translateText is best-effort: a backend failure returns the original text.
func (s *ExtractionService) translateText(ctx context.Context, text, targetLang string) string {
	if targetLang == DefaultTargetLanguage {
		return text
	}
	translated, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil {
		log.Printf("extraction: translation to %s failed: %v", targetLang, err)
		return text
	}
	return translated
}
