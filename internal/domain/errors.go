package domain

import "errors"

var (
	// ErrEmptyInput marks a review whose text was empty after normalization.
	// Per-item and recoverable: the item fails, the batch continues.
	ErrEmptyInput = errors.New("analysis: empty input")

	// ErrClassificationUnavailable marks an unreachable inference capability.
	ErrClassificationUnavailable = errors.New("analysis: classification unavailable")

	// ErrTranslationUnavailable marks an unreachable translation capability.
	ErrTranslationUnavailable = errors.New("analysis: translation unavailable")
)
