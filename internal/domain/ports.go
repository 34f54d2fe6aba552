package domain

import "context"

// DimensionEvidence is the raw per-dimension output of an inference backend.
// Score is the signed polarity, Evidence the attention mass the model put on
// the dimension; the classifier drops dimensions below its evidence threshold.
type DimensionEvidence struct {
	Score      float64 // [-1,1]
	Evidence   float64 // [0,1]
	Confidence float64 // [0,1]
}

// Inference is one backend verdict for one text.
type Inference struct {
	Scores  map[SentimentLabel]float64 // per-class confidence
	Aspects map[Dimension]DimensionEvidence
}

// SentimentInferencer is the pluggable sentiment/aspect inference capability.
type SentimentInferencer interface {
	Infer(ctx context.Context, text string) (Inference, error)
}

// TranslationProvider is the pluggable translation capability.
type TranslationProvider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Cache is a read-through cache. Implementations must be safe for concurrent
// use; Get reports (false, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
