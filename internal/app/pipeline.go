package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"german_market/internal/adapters/observability"
	"german_market/internal/classify"
	"german_market/internal/domain"
	"german_market/internal/nlp"
	"german_market/internal/risk"
)

// Options tunes the per-review pipeline. Zero values select the defaults.
type Options struct {
	TargetLang   string        // translation target, default "en"
	KeywordLimit int           // default nlp.DefaultKeywordLimit
	StageTimeout time.Duration // per analysis stage, default 10s
	Workers      int           // concurrent reviews per batch, default 8
}

func (o Options) withDefaults() Options {
	if o.TargetLang == "" {
		o.TargetLang = "en"
	}
	if o.KeywordLimit <= 0 {
		o.KeywordLimit = nlp.DefaultKeywordLimit
	}
	if o.StageTimeout <= 0 {
		o.StageTimeout = 10 * time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 8
	}
	return o
}

// Pipeline sequences normalization and the four analysis stages for each
// review and produces exactly one AnalysisResult per valid review. A nil
// translator disables the translation stage entirely.
type Pipeline struct {
	classifier *classify.Classifier
	translator domain.TranslationProvider
	detector   *risk.Detector
	aggregator *Aggregator
	opts       Options
}

func NewPipeline(c *classify.Classifier, t domain.TranslationProvider, d *risk.Detector, agg *Aggregator, opts Options) *Pipeline {
	if agg == nil {
		agg = NewAggregator(Thresholds{})
	}
	return &Pipeline{classifier: c, translator: t, detector: d, aggregator: agg, opts: opts.withDefaults()}
}

// AnalyzeReview runs the full pipeline for one review. The returned result is
// always terminal: Failed only when normalization yields empty text,
// Finalized otherwise, even if every analysis stage failed.
func (p *Pipeline) AnalyzeReview(ctx context.Context, r domain.Review) domain.AnalysisResult {
	res := domain.AnalysisResult{ReviewID: r.ID, Status: domain.StatusNormalizing}

	start := time.Now()
	norm, err := nlp.Normalize(r.RawText)
	observability.ObserveStage(domain.StageNormalize, err, time.Since(start))
	if err != nil {
		res.Status = domain.StatusFailed
		res.Errors = append(res.Errors, domain.StageError{Stage: domain.StageNormalize, Message: err.Error()})
		observability.ObserveBatchItem("failed")
		log.Debug().Str("review", r.ID).Err(err).Msg("normalization failed")
		return res
	}

	res.Status = domain.StatusAnalyzing

	// The four stages fan out; each failure is captured independently and
	// never aborts a sibling.
	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(stage string, err error) {
		mu.Lock()
		res.Errors = append(res.Errors, domain.StageError{Stage: stage, Message: err.Error()})
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		sctx, cancel := context.WithTimeout(ctx, p.opts.StageTimeout)
		defer cancel()
		start := time.Now()
		sent, aspects, err := p.classifier.Classify(sctx, norm.Text)
		observability.ObserveStage(domain.StageClassify, err, time.Since(start))
		if err != nil {
			fail(domain.StageClassify, err)
			return
		}
		mu.Lock()
		res.Sentiment = &sent
		res.Aspects = aspects
		mu.Unlock()
	}()

	if p.translator != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, p.opts.StageTimeout)
			defer cancel()
			start := time.Now()
			out, err := p.translator.Translate(sctx, norm.Text, p.opts.TargetLang)
			observability.ObserveStage(domain.StageTranslate, err, time.Since(start))
			if err != nil {
				fail(domain.StageTranslate, err)
				return
			}
			mu.Lock()
			res.TranslatedText = &out
			mu.Unlock()
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		kws := nlp.ExtractKeywords(norm.Text, p.opts.KeywordLimit)
		observability.ObserveStage(domain.StageKeywords, nil, time.Since(start))
		mu.Lock()
		res.Keywords = kws
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		flags := p.detector.Detect(norm.Text, norm.EmojiCount)
		observability.ObserveStage(domain.StageRisk, nil, time.Since(start))
		mu.Lock()
		res.RiskFlags = flags
		mu.Unlock()
	}()

	wg.Wait()

	// stable error order regardless of which stage lost the race
	sort.Slice(res.Errors, func(a, b int) bool { return res.Errors[a].Stage < res.Errors[b].Stage })

	res.Status = domain.StatusFinalized
	if res.Partial() {
		observability.ObserveBatchItem("partial")
		log.Debug().Str("review", r.ID).Int("stage_errors", len(res.Errors)).Msg("review finalized partial")
	} else {
		observability.ObserveBatchItem("finalized")
	}
	return res
}

// AnalyzeBatch processes reviews concurrently up to the worker limit and
// aggregates every item that reached a terminal state. On cancellation the
// finished items keep their results; unstarted items stay Pending and are
// excluded from the report.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, reviews []domain.Review) (domain.BatchReport, []domain.AnalysisResult) {
	results := make([]domain.AnalysisResult, len(reviews))
	for i, r := range reviews {
		results[i] = domain.AnalysisResult{ReviewID: r.ID, Status: domain.StatusPending}
	}

	sem := semaphore.NewWeighted(int64(p.opts.Workers))
	var wg sync.WaitGroup

	for i, r := range reviews {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Int("remaining", len(reviews)-i).Msg("batch cancelled mid-flight")
			break
		}
		wg.Add(1)
		go func(i int, r domain.Review) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = p.AnalyzeReview(ctx, r)
		}(i, r)
	}
	wg.Wait()

	terminal := make([]domain.AnalysisResult, 0, len(results))
	for _, res := range results {
		if res.Status.Terminal() {
			terminal = append(terminal, res)
		}
	}

	report := p.aggregator.Aggregate(terminal)
	log.Info().
		Int("total", report.TotalReviews).
		Int("analyzed", report.AnalyzedCount).
		Int("failed", report.FailedCount).
		Int("partial", report.PartialCount).
		Str("report", report.ID).
		Msg("batch analysis complete")
	return report, results
}
