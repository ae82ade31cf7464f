package handler

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"menulens/internal/domain"
	"menulens/internal/service"
)

// allowedExtensions are the upload formats accepted by the OCR endpoint.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// ExtractionHandler handles the menu OCR endpoint.
type ExtractionHandler struct {
	extractor      service.Extractor
	maxUploadBytes int64
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractor service.Extractor, maxUploadBytes int64) *ExtractionHandler {
	return &ExtractionHandler{extractor: extractor, maxUploadBytes: maxUploadBytes}
}

// ExtractionResponse is the success body for POST /api/ocr.
type ExtractionResponse struct {
	Success          bool              `json:"success"`
	DetectedLanguage string            `json:"detected_language"`
	TargetLanguage   string            `json:"target_language"`
	Confidence       float64           `json:"confidence"`
	RawText          string            `json:"raw_text"`
	MenuItems        []domain.MenuItem `json:"menu_items"`
	TotalItems       int               `json:"total_items"`
}

// Extract handles POST /api/ocr.
//
// Expects a multipart form with a "file" image field and an optional
// "target_lang" field (default "en"). Uploads are validated by extension
// and size before decoding; the decoded image is handed to the extraction
// pipeline and discarded when the request ends.
func (h *ExtractionHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "no file selected")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !allowedExtensions[ext] {
		status, code, msg := MapDomainError(domain.ErrUnsupportedFileType)
		RespondError(c, status, code, msg)
		return
	}

	if header.Size > h.maxUploadBytes {
		status, code, msg := MapDomainError(domain.ErrFileTooLarge)
		RespondError(c, status, code, msg)
		return
	}

	targetLang := c.DefaultPostForm("target_lang", service.DefaultTargetLanguage)

	img, err := imaging.Decode(file)
	if err != nil {
		status, code, msg := MapDomainError(domain.ErrInvalidImage)
		RespondError(c, status, code, msg)
		return
	}

	result, err := h.extractor.Extract(c.Request.Context(), img, targetLang)
	if err != nil {
		status, code, msg := MapDomainError(err)
		if status == http.StatusInternalServerError {
			log.Printf("extractionHandler.Extract: pipeline failed for %s: %v", header.Filename, err)
		}
		RespondError(c, status, code, msg)
		return
	}

	c.JSON(http.StatusOK, ExtractionResponse{
		Success:          true,
		DetectedLanguage: result.DetectedLanguage,
		TargetLanguage:   result.TargetLanguage,
		Confidence:       result.Confidence,
		RawText:          result.RawText,
		MenuItems:        result.Items,
		TotalItems:       len(result.Items),
	})
}
