// Package gemini provides a translation backend on the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"german_market/internal/domain"
)

const DefaultModel = "gemini-2.5-flash"

type Translator struct {
	client *genai.Client
	model  string
}

var _ domain.TranslationProvider = (*Translator)(nil)

// NewTranslator builds the client from ambient credentials (API key or ADC,
// per the genai SDK's environment variables).
func NewTranslator(ctx context.Context) (*Translator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Translator{client: client, model: DefaultModel}, nil
}

func (g *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following German customer review into %s. Reply with the translation only, no commentary.\n\n%s",
		languageName(targetLang), text,
	)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslationUnavailable, err)
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("%w: empty model response", domain.ErrTranslationUnavailable)
	}
	return out, nil
}

func languageName(code string) string {
	switch strings.ToLower(code) {
	case "en":
		return "English"
	case "zh":
		return "Chinese"
	case "fr":
		return "French"
	case "es":
		return "Spanish"
	default:
		return code
	}
}
