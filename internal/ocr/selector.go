package ocr

import (
	"log"
	"strings"

	"menulens/internal/domain"
)

// Candidate pairs one profile's extracted text with its mean confidence.
type Candidate struct {
	// Profile is the name of the configuration that produced this candidate.
	Profile string `json:"profile"`

	// Text is the full text extracted under this profile.
	Text string `json:"text"`

	// MeanConfidence is the arithmetic mean of word confidences strictly
	// greater than zero, in [0, 100]. Zero when no word scored positive.
	MeanConfidence float64 `json:"mean_confidence"`
}

// Selector runs an Engine under a fixed ordered list of profiles and keeps
// the highest-scoring result.
type Selector struct {
	engine   Engine
	profiles []Profile
}

// NewSelector creates a Selector over the given engine. With no explicit
// profiles it uses DefaultProfiles.
func NewSelector(engine Engine, profiles ...Profile) *Selector {
	if len(profiles) == 0 {
		profiles = DefaultProfiles
	}
	return &Selector{engine: engine, profiles: profiles}
}

// SelectBest runs every profile sequentially against the image and returns
// the candidate with the highest mean confidence.
//
// A profile whose OCR execution fails is logged and skipped; one profile's
// failure never aborts the selection. Ties keep the earliest profile (the
// comparison is strictly greater-than).
//
// Returns domain.ErrNoTextDetected when every profile failed or the best
// candidate's text is empty or whitespace-only.
func (s *Selector) SelectBest(imagePath string) (*Candidate, error) {
	var best *Candidate
	for _, profile := range s.profiles {
		result, err := s.engine.Recognize(imagePath, profile)
		if err != nil {
			log.Printf("ocr: profile %s failed: %v", profile.Name, err)
			continue
		}

		candidate := &Candidate{
			Profile:        profile.Name,
			Text:           result.Text,
			MeanConfidence: meanConfidence(result.Words),
		}
		if best == nil || candidate.MeanConfidence > best.MeanConfidence {
			best = candidate
		}
	}

	if best == nil || strings.TrimSpace(best.Text) == "" {
		return nil, domain.ErrNoTextDetected
	}
	return best, nil
}

// meanConfidence averages confidences strictly greater than zero.
// Tesseract reports -1 or 0 for tokens it could not score; those are
// excluded so one unreadable smudge does not drag the whole profile down.
func meanConfidence(words []Word) float64 {
	var sum float64
	var n int
	for _, w := range words {
		if w.Confidence > 0 {
			sum += w.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
