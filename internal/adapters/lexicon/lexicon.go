// Package lexicon is a dependency-free inference backend built on German
// marketplace word lists. Sentence-level polarity from sentiment words is
// projected onto the dimensions each sentence mentions. Fully deterministic,
// no network, no failure mode; it is the default backend and the test
// backbone for the pipeline.
package lexicon

import (
	"context"
	"regexp"
	"strings"

	"german_market/internal/domain"
)

var positiveWords = []string{
	"super", "toll", "perfekt", "ausgezeichnet", "hervorragend", "fantastisch",
	"wunderbar", "großartig", "empfehlenswert", "zufrieden", "schnell", "pünktlich",
}

var negativeWords = []string{
	"schlecht", "mangelhaft", "enttäuscht", "kaputt", "defekt", "langsam",
	"überteuert", "schrecklich", "furchtbar", "ärgerlich", "beschädigt", "minderwertig",
}

// dimensionKeywords maps the report dimensions to German cue words.
// Containment matching, so "Lieferung" also hits "Lieferzeit" via its stem.
var dimensionKeywords = map[domain.Dimension][]string{
	domain.DimLogistics: {
		"versand", "lieferung", "lieferzeit", "zustellung", "paket",
		"dhl", "hermes", "angekommen", "geliefert",
	},
	domain.DimQuality: {
		"qualität", "verarbeitung", "haltbar", "robust", "stabil",
		"hochwertig", "minderwertig", "kaputt", "defekt",
	},
	domain.DimPrice: {
		"preis", "günstig", "teuer", "kosten", "bezahlt", "preiswert", "überteuert",
	},
	domain.DimPackaging: {
		"verpackung", "karton", "verpackt", "schachtel", "box",
	},
	domain.DimService: {
		"kundenservice", "service", "kontakt", "antwort", "hilfe",
		"support", "erreichbar",
	},
	domain.DimOther: {
		"design", "aussehen", "farbe", "optik", "material", "stoff",
		"größe", "funktion", "funktioniert", "praktisch",
	},
}

var reSentence = regexp.MustCompile(`[.!?]+`)

type Backend struct{}

func New() *Backend { return &Backend{} }

var _ domain.SentimentInferencer = (*Backend)(nil)

// Infer scores the text sentence by sentence. Overall class confidences come
// from the positive/negative word balance; each mentioned dimension gets the
// mean polarity of the sentences mentioning it.
func (b *Backend) Infer(_ context.Context, text string) (domain.Inference, error) {
	type acc struct {
		polarity float64
		hits     int
		mentions int
	}
	dims := map[domain.Dimension]*acc{}

	var totalPos, totalNeg int
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		pos := countContained(lower, positiveWords)
		neg := countContained(lower, negativeWords)
		totalPos += pos
		totalNeg += neg

		var polarity float64
		if pos+neg > 0 {
			polarity = float64(pos-neg) / float64(pos+neg)
		}

		for dim, words := range dimensionKeywords {
			hits := countContained(lower, words)
			if hits == 0 {
				continue
			}
			a := dims[dim]
			if a == nil {
				a = &acc{}
				dims[dim] = a
			}
			a.polarity += polarity
			a.hits += hits
			a.mentions++
		}
	}

	inf := domain.Inference{
		Scores:  classScores(totalPos, totalNeg),
		Aspects: map[domain.Dimension]domain.DimensionEvidence{},
	}
	for dim, a := range dims {
		evidence := 0.5 * float64(a.hits)
		if evidence > 1 {
			evidence = 1
		}
		score := a.polarity / float64(a.mentions)
		conf := 0.6 + 0.3*abs(score)
		inf.Aspects[dim] = domain.DimensionEvidence{Score: score, Evidence: evidence, Confidence: conf}
	}
	return inf, nil
}

// classScores spreads the word balance over the three classes so that a clear
// majority wins and an exact balance lands on the classifier's tie rule.
func classScores(pos, neg int) map[domain.SentimentLabel]float64 {
	if pos+neg == 0 {
		return map[domain.SentimentLabel]float64{
			domain.SentimentPositive: 0.2,
			domain.SentimentNeutral:  0.6,
			domain.SentimentNegative: 0.2,
		}
	}
	total := float64(pos + neg)
	return map[domain.SentimentLabel]float64{
		domain.SentimentPositive: 0.1 + 0.8*float64(pos)/total,
		domain.SentimentNeutral:  0.2,
		domain.SentimentNegative: 0.1 + 0.8*float64(neg)/total,
	}
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range reSentence.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func countContained(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
