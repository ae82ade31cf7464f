package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menulens/internal/domain"
	"menulens/internal/handler"
	"menulens/internal/router"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, img image.Image, targetLang string) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, img, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

const testMaxUpload = 16 << 20

func setupRouter(extractor *mockExtractor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Setup(handler.NewExtractionHandler(extractor, testMaxUpload), handler.NewHealthHandler())
}

// pngUpload builds a multipart body with a small encoded PNG under the
// given filename.
func pngUpload(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))
	return rawUpload(t, filename, encoded.Bytes(), fields)
}

func rawUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doRequest(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/ocr", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestExtract_Success(t *testing.T) {
	extractor := &mockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything, "en").Return(&domain.ExtractionResult{
		DetectedLanguage: "en",
		TargetLanguage:   "en",
		Confidence:       82.4,
		RawText:          "Pasta $12.50",
		Items: []domain.MenuItem{
			{Name: "Pasta", Price: "$12.50", FullText: "Pasta $12.50"},
		},
	}, nil)

	r := setupRouter(extractor)
	body, contentType := pngUpload(t, "menu.png", nil)
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ExtractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "en", resp.DetectedLanguage)
	assert.InDelta(t, 82.4, resp.Confidence, 1e-9)
	assert.Equal(t, 1, resp.TotalItems)
	require.Len(t, resp.MenuItems, 1)
	assert.Equal(t, "Pasta", resp.MenuItems[0].Name)
	extractor.AssertExpectations(t)
}

func TestExtract_TargetLangForwarded(t *testing.T) {
	extractor := &mockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything, "fr").Return(&domain.ExtractionResult{
		DetectedLanguage: "it",
		TargetLanguage:   "fr",
	}, nil)

	r := setupRouter(extractor)
	body, contentType := pngUpload(t, "menu.png", map[string]string{"target_lang": "fr"})
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusOK, w.Code)
	extractor.AssertExpectations(t)
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := &mockExtractor{}
	r := setupRouter(extractor)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())
	w := doRequest(r, body, writer.FormDataContentType())

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	extractor.AssertNotCalled(t, "Extract")
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	extractor := &mockExtractor{}
	r := setupRouter(extractor)

	body, contentType := pngUpload(t, "menu.pdf", nil)
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
	extractor.AssertNotCalled(t, "Extract")
}

func TestExtract_FileTooLarge(t *testing.T) {
	extractor := &mockExtractor{}
	gin.SetMode(gin.TestMode)
	r := router.Setup(handler.NewExtractionHandler(extractor, 10), handler.NewHealthHandler())

	body, contentType := pngUpload(t, "menu.png", nil)
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
	extractor.AssertNotCalled(t, "Extract")
}

func TestExtract_UndecodableImage(t *testing.T) {
	extractor := &mockExtractor{}
	r := setupRouter(extractor)

	body, contentType := rawUpload(t, "menu.png", []byte("not a real image"), nil)
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_IMAGE", resp.Error.Code)
	extractor.AssertNotCalled(t, "Extract")
}

func TestExtract_NoTextDetected(t *testing.T) {
	extractor := &mockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything, "en").Return(nil, domain.ErrNoTextDetected)

	r := setupRouter(extractor)
	body, contentType := pngUpload(t, "menu.png", nil)
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "NO_TEXT_DETECTED", resp.Error.Code)
}

func TestExtract_PipelineFailure(t *testing.T) {
	extractor := &mockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything, "en").Return(nil, errors.New("tesseract exploded"))

	r := setupRouter(extractor)
	body, contentType := pngUpload(t, "menu.png", nil)
	w := doRequest(r, body, contentType)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// internal detail must not leak to the client
	assert.NotContains(t, resp.Error.Message, "tesseract")
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := router.Setup(handler.NewExtractionHandler(&mockExtractor{}, testMaxUpload), handler.NewHealthHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
