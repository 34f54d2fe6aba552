// Package classify turns raw inference output into the sentiment verdict and
// the per-dimension aspect scores of a review.
package classify

import (
	"context"
	"errors"
	"fmt"

	"german_market/internal/domain"
)

const (
	// DefaultEvidenceThreshold drops dimensions the model barely attended to,
	// so weak signals don't dilute aggregate statistics.
	DefaultEvidenceThreshold = 0.3

	// tieMargin is the confidence gap below which the top two classes count
	// as a tie; ties resolve to neutral as the conservative default.
	tieMargin = 0.01
)

var labelOrder = []domain.SentimentLabel{
	domain.SentimentPositive,
	domain.SentimentNeutral,
	domain.SentimentNegative,
}

type Classifier struct {
	backend   domain.SentimentInferencer
	threshold float64
}

// New wires a classifier to an inference backend. threshold <= 0 selects
// DefaultEvidenceThreshold.
func New(backend domain.SentimentInferencer, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultEvidenceThreshold
	}
	return &Classifier{backend: backend, threshold: threshold}
}

// Classify runs the backend once and derives the overall label and the
// above-threshold aspect scores. A backend failure surfaces as
// domain.ErrClassificationUnavailable.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.SentimentResult, []domain.AspectScore, error) {
	inf, err := c.backend.Infer(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationUnavailable) {
			return domain.SentimentResult{}, nil, err
		}
		return domain.SentimentResult{}, nil, fmt.Errorf("%w: %v", domain.ErrClassificationUnavailable, err)
	}

	sent := pickLabel(inf.Scores)

	var aspects []domain.AspectScore
	for _, dim := range domain.Dimensions {
		ev, ok := inf.Aspects[dim]
		if !ok || ev.Evidence <= c.threshold {
			continue
		}
		aspects = append(aspects, domain.AspectScore{
			Dimension:  dim,
			Score:      clamp(ev.Score, -1, 1),
			Confidence: clamp(ev.Confidence, 0, 1),
		})
	}
	return sent, aspects, nil
}

// pickLabel chooses the highest-confidence class, iterating labels in a fixed
// order so equal scores resolve deterministically.
func pickLabel(scores map[domain.SentimentLabel]float64) domain.SentimentResult {
	if len(scores) == 0 {
		return domain.SentimentResult{Label: domain.SentimentNeutral, Confidence: 0}
	}

	best, second := domain.SentimentNeutral, 0.0
	bestScore := -1.0
	for _, l := range labelOrder {
		s, ok := scores[l]
		if !ok {
			continue
		}
		if s > bestScore {
			second = bestScore
			best, bestScore = l, s
		} else if s > second {
			second = s
		}
	}

	if second >= 0 && bestScore-second < tieMargin {
		return domain.SentimentResult{Label: domain.SentimentNeutral, Confidence: bestScore}
	}
	return domain.SentimentResult{Label: best, Confidence: bestScore}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
