package services

import "github.com/pkg/errors"

// Sentinel errors surfaced to the HTTP layer. Handlers map these onto status
// codes; everything else is an internal failure.
var (
	// ErrNoFiles is returned when an upload batch contains no files.
	ErrNoFiles = errors.New("no files were uploaded")

	// ErrUnsupportedType rejects the whole batch when any file's extension
	// or MIME type is not an allowed image format.
	ErrUnsupportedType = errors.New("only images are allowed (jpeg, jpg, png, gif, webp)")

	// ErrFileTooLarge rejects files over the per-file size ceiling.
	ErrFileTooLarge = errors.New("file too large, the limit is 50MB per image")

	// ErrMissingField marks a required project field that was left blank.
	ErrMissingField = errors.New("required field is missing")

	// ErrEmptyGallery rejects project saves without any images.
	ErrEmptyGallery = errors.New("project must have at least one image")
)
