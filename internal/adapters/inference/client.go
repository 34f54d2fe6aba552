// Package inference talks to a remote sentiment/translation inference service
// over JSON. The client rate-limits itself, retries transient failures with
// jittered backoff and maps exhausted retries to the pipeline's
// capability-unavailable errors.
package inference

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"german_market/internal/adapters/observability"
	"german_market/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

var _ domain.SentimentInferencer = (*Client)(nil)
var _ domain.TranslationProvider = (*Client)(nil)

// New builds a client for the inference service at base. rps bounds the
// client-side request rate; key is sent as X-API-Key when non-empty.
func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("inference base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- wire format ----

type inferRequest struct {
	Text string `json:"text"`
}

type dimensionPayload struct {
	Score      float64 `json:"score"`
	Evidence   float64 `json:"evidence"`
	Confidence float64 `json:"confidence"`
}

type inferResponse struct {
	Scores  map[string]float64          `json:"scores"`
	Aspects map[string]dimensionPayload `json:"aspects"`
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

var knownLabels = map[string]domain.SentimentLabel{
	"positive": domain.SentimentPositive,
	"neutral":  domain.SentimentNeutral,
	"negative": domain.SentimentNegative,
}

var knownDimensions = map[string]domain.Dimension{
	"logistics": domain.DimLogistics,
	"quality":   domain.DimQuality,
	"price":     domain.DimPrice,
	"packaging": domain.DimPackaging,
	"service":   domain.DimService,
	"other":     domain.DimOther,
}

// ---- capabilities ----

func (c *Client) Infer(ctx context.Context, text string) (domain.Inference, error) {
	var resp inferResponse
	if err := c.post(ctx, "/v1/sentiment", inferRequest{Text: text}, &resp); err != nil {
		return domain.Inference{}, fmt.Errorf("%w: %v", domain.ErrClassificationUnavailable, err)
	}

	inf := domain.Inference{
		Scores:  map[domain.SentimentLabel]float64{},
		Aspects: map[domain.Dimension]domain.DimensionEvidence{},
	}
	for name, score := range resp.Scores {
		if label, ok := knownLabels[strings.ToLower(name)]; ok {
			inf.Scores[label] = score
		}
	}
	for name, p := range resp.Aspects {
		if dim, ok := knownDimensions[strings.ToLower(name)]; ok {
			inf.Aspects[dim] = domain.DimensionEvidence{
				Score: p.Score, Evidence: p.Evidence, Confidence: p.Confidence,
			}
		}
	}
	return inf, nil
}

func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	var resp translateResponse
	if err := c.post(ctx, "/v1/translate", translateRequest{Text: text, TargetLang: targetLang}, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslationUnavailable, err)
	}
	return resp.TranslatedText, nil
}

// ---- internals ----

// post performs a POST with client-side rate limiting, retries and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// fresh request each attempt: the body reader is consumed per try
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "german-market/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("inference", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("inference", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles per attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter against thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
