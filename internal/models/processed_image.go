package models

// ProcessedImage is the result of ingesting one uploaded file. DisplayURL and
// ThumbnailURL are always populated: when the transform step failed they both
// carry the original, unoptimized bytes' URL and Degraded is set.
type ProcessedImage struct {
	OriginalRef  string `json:"original_ref"`
	DisplayURL   string `json:"display_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	StorageRef   string `json:"storage_ref"`
	Degraded     bool   `json:"degraded,omitempty"`
	Reason       string `json:"reason,omitempty"`

	// SavedBytes is how much smaller the display variant is than the
	// original. Zero when the store does not transform eagerly.
	SavedBytes int64 `json:"-"`
}
