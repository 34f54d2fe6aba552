package domain

import "time"

const DefaultSourceLanguage = "de"

// Review is a single raw customer review. Immutable once created.
type Review struct {
	ID             string    `json:"id"`
	RawText        string    `json:"rawText"`
	SourceLanguage string    `json:"sourceLanguage"`
	ReceivedAt     time.Time `json:"receivedAt"`
	SourceID       *string   `json:"sourceId,omitempty"` // origin marketplace/listing
}

// NormalizedText is the cleaned, non-persisted view of Review.RawText.
// EmojiCount survives normalization as a risk signal.
type NormalizedText struct {
	Text       string
	EmojiCount int
}
