package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"german_market/internal/adapters/gemini"
	"german_market/internal/adapters/inference"
	"german_market/internal/adapters/lexicon"
	"german_market/internal/adapters/memcache"
	"german_market/internal/adapters/observability"
	"german_market/internal/adapters/rediscache"
	"german_market/internal/app"
	"german_market/internal/classify"
	"german_market/internal/domain"
	"german_market/internal/risk"
	"german_market/internal/shared"
	"german_market/internal/translate"
)

func main() {
	withItems := flag.Bool("items", false, "include per-review results in the output")
	flag.Parse()

	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.Serve()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reviews, err := readReviews(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("read reviews failed")
	}
	log.Info().
		Int("reviews", len(reviews)).
		Int("workers", cfg.Workers).
		Str("target_lang", cfg.TargetLang).
		Msg("analyzer starting")

	pipe := buildPipeline(ctx, cfg)
	report, results := pipe.AnalyzeBatch(ctx, reviews)

	out := struct {
		Report domain.BatchReport      `json:"report"`
		Items  []domain.AnalysisResult `json:"items,omitempty"`
	}{Report: report}
	if *withItems {
		out.Items = results
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("write report failed")
	}
}

func buildPipeline(ctx context.Context, cfg shared.Config) *app.Pipeline {
	// risk rules
	rules := risk.Rules{}
	if cfg.RiskRulesPath != "" {
		var err error
		rules, err = risk.LoadRules(cfg.RiskRulesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RiskRulesPath).Msg("load risk rules failed")
		}
	}
	detector := risk.NewDetectorWithRules(rules)

	// inference backend
	var inferencer domain.SentimentInferencer
	var httpClient *inference.Client
	if cfg.InferenceBase != "" {
		var err error
		httpClient, err = inference.New(cfg.InferenceBase, cfg.InferenceKey, cfg.InferenceRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("inference client init failed")
		}
		inferencer = httpClient
		log.Info().Str("base", cfg.InferenceBase).Msg("using HTTP inference backend")
	} else {
		inferencer = lexicon.New()
		log.Info().Msg("using lexicon inference backend")
	}
	classifier := classify.New(inferencer, cfg.EvidenceThreshold)

	// translation backend behind the content-hash cache
	var translator domain.TranslationProvider
	switch cfg.Translator {
	case "http":
		if httpClient == nil {
			log.Fatal().Msg("TRANSLATOR=http requires INFERENCE_BASE_URL")
		}
		translator = httpClient
	case "gemini":
		g, err := gemini.NewTranslator(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini init failed")
		}
		translator = g
	case "none":
		log.Info().Msg("translation disabled")
	default:
		log.Fatal().Str("translator", cfg.Translator).Msg("unknown TRANSLATOR value")
	}
	if translator != nil {
		var cache domain.Cache
		if cfg.RedisAddr != "" {
			cache = rediscache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		} else {
			var err error
			cache, err = memcache.New(cfg.CacheSize)
			if err != nil {
				log.Fatal().Err(err).Msg("cache init failed")
			}
		}
		translator = translate.NewCached(translator, cache, int(cfg.CacheTTL.Seconds()))
	}

	return app.NewPipeline(classifier, translator, detector, app.NewAggregator(app.Thresholds{}), app.Options{
		TargetLang:   cfg.TargetLang,
		KeywordLimit: cfg.KeywordLimit,
		StageTimeout: cfg.StageTimeout,
		Workers:      cfg.Workers,
	})
}

// readReviews decodes a JSON array of reviews from path, or stdin when path
// is empty or "-".
func readReviews(path string) ([]domain.Review, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var reviews []domain.Review
	if err := json.NewDecoder(r).Decode(&reviews); err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].SourceLanguage == "" {
			reviews[i].SourceLanguage = domain.DefaultSourceLanguage
		}
	}
	return reviews, nil
}
