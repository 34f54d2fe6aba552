package domain

import "time"

// RiskBreakdown groups one category's flags by severity.
type RiskBreakdown struct {
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"bySeverity"`
}

// KeywordCount is one ranked entry of a report's top keywords.
type KeywordCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// DimensionStats summarizes one dimension's aspect scores across a batch.
type DimensionStats struct {
	Mean         float64 `json:"mean"`
	Count        int     `json:"count"`
	PositiveRate float64 `json:"positiveRate"` // share of scores > 0
}

// BatchReport is the aggregated output of one batch invocation. It holds only
// derived counts, no references back to the source reviews or results.
type BatchReport struct {
	ID                    string                         `json:"id"`
	GeneratedAt           time.Time                      `json:"generatedAt"`
	TotalReviews          int                            `json:"totalReviews"`
	AnalyzedCount         int                            `json:"analyzedCount"` // items that reached Finalized
	FailedCount           int                            `json:"failedCount"`
	PartialCount          int                            `json:"partialCount"` // finalized with stage failures
	SentimentDistribution map[SentimentLabel]int         `json:"sentimentDistribution"`
	RiskSummary           map[RiskCategory]RiskBreakdown `json:"riskSummary"`
	DimensionScores       map[Dimension]DimensionStats   `json:"dimensionScores"`
	TopKeywords           []KeywordCount                 `json:"topKeywords"`
	KeyInsights           []string                       `json:"keyInsights"`
}
