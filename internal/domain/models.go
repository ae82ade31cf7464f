package domain

// MenuItem is one structured entry recovered from a menu photograph.
//
// Fields are filled in as the segmenter accumulates lines: a name or
// description opens an item, and a price line closes it. Items that never
// see a price line are flushed as partial records with no Price/FullText.
type MenuItem struct {
	// Name is the short title line of the item, e.g. "Margherita Pizza".
	Name string `json:"name,omitempty"`

	// Description is a longer free-text line describing the item.
	Description string `json:"description,omitempty"`

	// Price is the raw price token as matched in the OCR text, e.g. "$12.50".
	Price string `json:"price,omitempty"`

	// FullText is the accumulated name plus the closing price line.
	FullText string `json:"full_text,omitempty"`

	// Translations maps synthesized keys ("name_translated",
	// "description_translated") to translated field values. Only populated
	// when a non-default target language was requested.
	Translations map[string]string `json:"translations,omitempty"`
}

// ExtractionResult is the complete outcome of one menu extraction request.
// It is assembled once per request and immutable after being returned.
type ExtractionResult struct {
	// DetectedLanguage is the dominant language of the OCR text, or
	// "unknown" when detection was unavailable.
	DetectedLanguage string `json:"detected_language"`

	// TargetLanguage is the language translations were requested in.
	TargetLanguage string `json:"target_language"`

	// Confidence is the winning OCR profile's mean word confidence (0-100).
	Confidence float64 `json:"confidence"`

	// RawText is the full text produced by the winning OCR profile.
	RawText string `json:"raw_text"`

	// Items are the structured menu items in the order they appeared.
	Items []MenuItem `json:"menu_items"`
}
