package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	MetricsAddr string

	// capability backends
	InferenceBase string // HTTP inference service; empty selects the lexicon backend
	InferenceKey  string
	InferenceRPS  int
	Translator    string // "http" | "gemini" | "none"
	TargetLang    string

	// cache
	RedisAddr string // empty selects the in-process LRU cache
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration
	CacheSize int

	// pipeline tuning
	Workers           int
	StageTimeout      time.Duration
	KeywordLimit      int
	EvidenceThreshold float64
	RiskRulesPath     string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		MetricsAddr:       env("METRICS_ADDR", ""),
		InferenceBase:     env("INFERENCE_BASE_URL", ""),
		InferenceKey:      env("INFERENCE_API_KEY", ""),
		InferenceRPS:      atoi("INFERENCE_RPS", 5),
		Translator:        env("TRANSLATOR", "none"),
		TargetLang:        env("TARGET_LANG", "en"),
		RedisAddr:         env("REDIS_ADDR", ""),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 0)) * time.Second,
		CacheSize:         atoi("CACHE_SIZE", 4096),
		Workers:           atoi("ANALYZE_WORKERS", 8),
		StageTimeout:      time.Duration(atoi("STAGE_TIMEOUT_SECONDS", 10)) * time.Second,
		KeywordLimit:      atoi("KEYWORD_LIMIT", 10),
		EvidenceThreshold: atof("ASPECT_EVIDENCE_THRESHOLD", 0.3),
		RiskRulesPath:     env("RISK_RULES_PATH", ""),
	}
	if c.Translator == "http" && c.InferenceBase == "" {
		log.Warn().Msg("TRANSLATOR=http but INFERENCE_BASE_URL is empty; translation disabled")
		c.Translator = "none"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
