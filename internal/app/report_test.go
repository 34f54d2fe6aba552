package app_test

import (
	"fmt"
	"strings"
	"testing"

	"german_market/internal/app"
	"german_market/internal/domain"
)

func finalized(id string, label domain.SentimentLabel) domain.AnalysisResult {
	return domain.AnalysisResult{
		ReviewID:  id,
		Status:    domain.StatusFinalized,
		Sentiment: &domain.SentimentResult{Label: label, Confidence: 0.9},
	}
}

func TestAggregate_CountsAndDistribution(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})

	partial := finalized("r4", domain.SentimentNeutral)
	partial.Errors = []domain.StageError{{Stage: domain.StageTranslate, Message: "unavailable"}}

	rep := agg.Aggregate([]domain.AnalysisResult{
		finalized("r1", domain.SentimentPositive),
		finalized("r2", domain.SentimentPositive),
		finalized("r3", domain.SentimentNegative),
		partial,
		{ReviewID: "r5", Status: domain.StatusFailed, Errors: []domain.StageError{
			{Stage: domain.StageNormalize, Message: "empty input"},
		}},
	})

	if rep.ID == "" {
		t.Fatal("report must carry an id")
	}
	if rep.TotalReviews != 5 || rep.AnalyzedCount != 4 || rep.FailedCount != 1 || rep.PartialCount != 1 {
		t.Fatalf("counts: %+v", rep)
	}

	want := map[domain.SentimentLabel]int{
		domain.SentimentPositive: 2,
		domain.SentimentNegative: 1,
		domain.SentimentNeutral:  1,
	}
	for label, n := range want {
		if rep.SentimentDistribution[label] != n {
			t.Fatalf("distribution[%s] = %d, want %d", label, rep.SentimentDistribution[label], n)
		}
	}

	sum := 0
	for _, n := range rep.SentimentDistribution {
		sum += n
	}
	if sum != rep.AnalyzedCount {
		t.Fatalf("distribution sums to %d, analyzed is %d", sum, rep.AnalyzedCount)
	}
}

func TestAggregate_FailedItemsCarryNoSignal(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})
	rep := agg.Aggregate([]domain.AnalysisResult{
		{ReviewID: "r1", Status: domain.StatusFailed},
	})
	if len(rep.SentimentDistribution) != 0 || len(rep.RiskSummary) != 0 || len(rep.TopKeywords) != 0 {
		t.Fatalf("failed item leaked into aggregates: %+v", rep)
	}
}

func TestAggregate_RiskSummaryGroupsByCategoryAndSeverity(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})

	flag := func(id string, cat domain.RiskCategory, sev domain.Severity) domain.AnalysisResult {
		r := finalized(id, domain.SentimentNegative)
		r.RiskFlags = []domain.RiskFlag{{Category: cat, Severity: sev, MatchedTerms: []string{"x"}}}
		return r
	}

	rep := agg.Aggregate([]domain.AnalysisResult{
		flag("r1", domain.RiskLegal, domain.SeverityHigh),
		flag("r2", domain.RiskLegal, domain.SeverityMedium),
		flag("r3", domain.RiskRefund, domain.SeverityLow),
	})

	legal := rep.RiskSummary[domain.RiskLegal]
	if legal.Total != 2 || legal.BySeverity[domain.SeverityHigh] != 1 || legal.BySeverity[domain.SeverityMedium] != 1 {
		t.Fatalf("legal breakdown: %+v", legal)
	}
	refund := rep.RiskSummary[domain.RiskRefund]
	if refund.Total != 1 || refund.BySeverity[domain.SeverityLow] != 1 {
		t.Fatalf("refund breakdown: %+v", refund)
	}
	if _, ok := rep.RiskSummary[domain.RiskSafety]; ok {
		t.Fatal("unflagged category must be absent")
	}
}

func TestAggregate_KeywordRankingAndLimit(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})

	r1 := finalized("r1", domain.SentimentNeutral)
	r1.Keywords = []string{"lieferung", "qualität", "versand"}
	r2 := finalized("r2", domain.SentimentNeutral)
	r2.Keywords = []string{"qualität", "lieferung"}
	r3 := finalized("r3", domain.SentimentNeutral)
	r3.Keywords = []string{"lieferung"}

	rep := agg.Aggregate([]domain.AnalysisResult{r1, r2, r3})

	wantOrder := []domain.KeywordCount{
		{Term: "lieferung", Count: 3},
		{Term: "qualität", Count: 2},
		{Term: "versand", Count: 1},
	}
	if len(rep.TopKeywords) != len(wantOrder) {
		t.Fatalf("top keywords: %+v", rep.TopKeywords)
	}
	for i, want := range wantOrder {
		if rep.TopKeywords[i] != want {
			t.Fatalf("rank %d = %+v, want %+v", i, rep.TopKeywords[i], want)
		}
	}

	// 14 distinct terms, list caps at 10
	var many []domain.AnalysisResult
	for i := 0; i < 14; i++ {
		r := finalized(fmt.Sprintf("m%d", i), domain.SentimentNeutral)
		r.Keywords = []string{fmt.Sprintf("wort%02d", i)}
		many = append(many, r)
	}
	rep = agg.Aggregate(many)
	if len(rep.TopKeywords) != 10 {
		t.Fatalf("keyword cap: got %d entries", len(rep.TopKeywords))
	}
	// all count 1, so order falls back to first occurrence
	if rep.TopKeywords[0].Term != "wort00" || rep.TopKeywords[9].Term != "wort09" {
		t.Fatalf("tie order: %+v", rep.TopKeywords)
	}
}

func TestAggregate_DimensionStats(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})

	with := func(id string, score float64) domain.AnalysisResult {
		r := finalized(id, domain.SentimentNeutral)
		r.Aspects = []domain.AspectScore{{Dimension: domain.DimService, Score: score, Confidence: 0.7}}
		return r
	}

	rep := agg.Aggregate([]domain.AnalysisResult{
		with("r1", 1), with("r2", -1), with("r3", 1), with("r4", 0),
	})

	st := rep.DimensionScores[domain.DimService]
	if st.Count != 4 {
		t.Fatalf("count: %d", st.Count)
	}
	if st.Mean != 0.25 {
		t.Fatalf("mean: %v", st.Mean)
	}
	if st.PositiveRate != 0.5 {
		t.Fatalf("positive rate: %v", st.PositiveRate)
	}
}

func TestAggregate_Insights(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})

	// 10 reviews: 7 positive, 2 legal flags, logistics consistently negative
	var results []domain.AnalysisResult
	for i := 0; i < 10; i++ {
		label := domain.SentimentPositive
		if i >= 7 {
			label = domain.SentimentNegative
		}
		r := finalized(fmt.Sprintf("r%d", i), label)
		r.Aspects = []domain.AspectScore{{Dimension: domain.DimLogistics, Score: -0.8, Confidence: 0.7}}
		if i < 2 {
			r.RiskFlags = []domain.RiskFlag{{Category: domain.RiskLegal, Severity: domain.SeverityHigh, MatchedTerms: []string{"anwalt"}}}
		}
		results = append(results, r)
	}

	rep := agg.Aggregate(results)

	assertContains := func(substr string) {
		t.Helper()
		for _, in := range rep.KeyInsights {
			if strings.Contains(in, substr) {
				return
			}
		}
		t.Fatalf("missing insight %q in %v", substr, rep.KeyInsights)
	}
	assertContains("legal-risk")
	assertContains("logistics")
	assertContains("positive across 70%")
}

func TestAggregate_EmptyBatch(t *testing.T) {
	agg := app.NewAggregator(app.Thresholds{})
	rep := agg.Aggregate(nil)
	if rep.TotalReviews != 0 || len(rep.KeyInsights) != 0 {
		t.Fatalf("empty batch: %+v", rep)
	}
	if rep.ID == "" {
		t.Fatal("report must carry an id even when empty")
	}
}
