package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"german_market/internal/domain"
)

// topKeywordLimit caps the report's ranked keyword list.
const topKeywordLimit = 10

// Thresholds drives insight generation. Zero values select the defaults.
type Thresholds struct {
	LegalRate    float64 // legal flags / total reviews, default 0.05
	NegativeDim  float64 // mean aspect score below this is a pain point, default -0.3
	PositiveDim  float64 // mean aspect score above this is a strength, default 0.4
	MinDimCount  int     // qualifying reviews per dimension insight, default 5
	PositiveRate float64 // share of positive verdicts for the upbeat insight, default 0.6
	NegativeRate float64 // share of negative verdicts for the warning, default 0.4
}

func (t Thresholds) withDefaults() Thresholds {
	if t.LegalRate == 0 {
		t.LegalRate = 0.05
	}
	if t.NegativeDim == 0 {
		t.NegativeDim = -0.3
	}
	if t.PositiveDim == 0 {
		t.PositiveDim = 0.4
	}
	if t.MinDimCount == 0 {
		t.MinDimCount = 5
	}
	if t.PositiveRate == 0 {
		t.PositiveRate = 0.6
	}
	if t.NegativeRate == 0 {
		t.NegativeRate = 0.4
	}
	return t
}

// Aggregator folds terminal AnalysisResults into one BatchReport. Pure
// reduction: no I/O, never mutates its inputs.
type Aggregator struct {
	th Thresholds
}

func NewAggregator(th Thresholds) *Aggregator {
	return &Aggregator{th: th.withDefaults()}
}

func (a *Aggregator) Aggregate(results []domain.AnalysisResult) domain.BatchReport {
	rep := domain.BatchReport{
		ID:                    ulid.Make().String(),
		GeneratedAt:           time.Now().UTC(),
		TotalReviews:          len(results),
		SentimentDistribution: map[domain.SentimentLabel]int{},
		RiskSummary:           map[domain.RiskCategory]domain.RiskBreakdown{},
		DimensionScores:       map[domain.Dimension]domain.DimensionStats{},
	}

	type dimAcc struct {
		sum   float64
		count int
		pos   int
	}
	dims := map[domain.Dimension]*dimAcc{}

	kws := map[string]*kwAcc{}
	kwPos := 0

	for _, r := range results {
		switch r.Status {
		case domain.StatusFailed:
			rep.FailedCount++
			continue
		case domain.StatusFinalized:
			rep.AnalyzedCount++
			if r.Partial() {
				rep.PartialCount++
			}
		}

		// sentiment counts only finalized items with a present verdict
		if r.Sentiment != nil {
			rep.SentimentDistribution[r.Sentiment.Label]++
		}

		for _, as := range r.Aspects {
			d := dims[as.Dimension]
			if d == nil {
				d = &dimAcc{}
				dims[as.Dimension] = d
			}
			d.sum += as.Score
			d.count++
			if as.Score > 0 {
				d.pos++
			}
		}

		for _, f := range r.RiskFlags {
			b := rep.RiskSummary[f.Category]
			if b.BySeverity == nil {
				b.BySeverity = map[domain.Severity]int{}
			}
			b.Total++
			b.BySeverity[f.Severity]++
			rep.RiskSummary[f.Category] = b
		}

		for _, kw := range r.Keywords {
			k := kws[kw]
			if k == nil {
				k = &kwAcc{first: kwPos}
				kws[kw] = k
			}
			k.count++
			kwPos++
		}
	}

	for dim, d := range dims {
		rep.DimensionScores[dim] = domain.DimensionStats{
			Mean:         d.sum / float64(d.count),
			Count:        d.count,
			PositiveRate: float64(d.pos) / float64(d.count),
		}
	}

	rep.TopKeywords = rankKeywords(kws)
	rep.KeyInsights = a.insights(rep)
	return rep
}

type kwAcc struct {
	count int
	first int // global first-seen position, tie-breaker
}

func rankKeywords(kws map[string]*kwAcc) []domain.KeywordCount {
	terms := make([]string, 0, len(kws))
	for t := range kws {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(a, b int) bool {
		ka, kb := kws[terms[a]], kws[terms[b]]
		if ka.count != kb.count {
			return ka.count > kb.count
		}
		return ka.first < kb.first
	})
	if len(terms) > topKeywordLimit {
		terms = terms[:topKeywordLimit]
	}
	out := make([]domain.KeywordCount, len(terms))
	for i, t := range terms {
		out[i] = domain.KeywordCount{Term: t, Count: kws[t].count}
	}
	return out
}

// insights runs the threshold checks in a fixed order so identical aggregates
// always produce identical statements.
func (a *Aggregator) insights(rep domain.BatchReport) []string {
	var out []string
	total := rep.TotalReviews
	if total == 0 {
		return out
	}

	if legal := rep.RiskSummary[domain.RiskLegal].Total; float64(legal)/float64(total) > a.th.LegalRate {
		out = append(out, fmt.Sprintf(
			"Elevated legal-risk signal detected in %.0f%% of reviews",
			float64(legal)/float64(total)*100))
	}

	for _, dim := range domain.Dimensions {
		st, ok := rep.DimensionScores[dim]
		if !ok || st.Count < a.th.MinDimCount {
			continue
		}
		if st.Mean < a.th.NegativeDim {
			out = append(out, fmt.Sprintf("Negative sentiment concentrated in %s", dim))
		}
	}

	if rep.AnalyzedCount > 0 {
		posRate := float64(rep.SentimentDistribution[domain.SentimentPositive]) / float64(rep.AnalyzedCount)
		negRate := float64(rep.SentimentDistribution[domain.SentimentNegative]) / float64(rep.AnalyzedCount)
		if posRate > a.th.PositiveRate {
			out = append(out, fmt.Sprintf("Overall sentiment is positive across %.0f%% of analyzed reviews", posRate*100))
		}
		if negRate > a.th.NegativeRate {
			out = append(out, fmt.Sprintf("High negative share: %.0f%% of analyzed reviews", negRate*100))
		}
	}

	for _, dim := range domain.Dimensions {
		st, ok := rep.DimensionScores[dim]
		if !ok || st.Count < a.th.MinDimCount {
			continue
		}
		if st.Mean > a.th.PositiveDim {
			out = append(out, fmt.Sprintf("Consistent strength in %s (mean score %.2f)", dim, st.Mean))
		}
	}

	return out
}
