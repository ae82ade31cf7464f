package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"menulens/internal/domain"
)

// APIError holds error details in the response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for all error responses.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates pipeline errors to HTTP status codes and error
// codes. Anything unrecognized maps to a generic 500.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest, "INVALID_IMAGE", "could not read image file"
	case errors.Is(err, domain.ErrNoTextDetected):
		return http.StatusBadRequest, "NO_TEXT_DETECTED", "no text detected in image"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: png, jpg, jpeg, gif, bmp, tiff"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "processing failed"
	}
}
