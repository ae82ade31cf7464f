package domain

import "errors"

var (
	// ErrInvalidImage indicates the uploaded bytes did not decode to an
	// image, or the decoded image has zero dimensions.
	ErrInvalidImage = errors.New("image could not be decoded")

	// ErrNoTextDetected indicates no OCR profile produced usable text.
	ErrNoTextDetected = errors.New("no text detected in image")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
)
