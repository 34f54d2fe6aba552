// Package risk scans normalized review text for legal, safety, refund and
// complaint exposure. Matching is purely keyword based and deterministic:
// the same text always yields the same flags.
package risk

import (
	"sort"
	"strings"

	"german_market/internal/domain"
)

// emojiEscalation is the emoji count at or above which a low flag is promoted
// to medium. Heavily emoted complaints correlate with escalation intent.
const emojiEscalation = 3

// Detector matches category dictionaries against review text. The zero-value
// dictionaries are the built-in German term lists; Rules can extend them.
type Detector struct {
	keywords map[domain.RiskCategory][]string
	critical map[string]struct{}
}

// NewDetector builds a detector from the built-in German dictionaries.
func NewDetector() *Detector {
	return NewDetectorWithRules(Rules{})
}

// NewDetectorWithRules extends the built-in dictionaries with extra keywords
// and critical terms, e.g. loaded from a rules file.
func NewDetectorWithRules(r Rules) *Detector {
	d := &Detector{
		keywords: map[domain.RiskCategory][]string{},
		critical: map[string]struct{}{},
	}
	for cat, terms := range defaultKeywords {
		d.keywords[cat] = append(d.keywords[cat], terms...)
	}
	for _, t := range defaultCritical {
		d.critical[t] = struct{}{}
	}
	for cat, terms := range r.Keywords {
		d.keywords[domain.RiskCategory(cat)] = append(d.keywords[domain.RiskCategory(cat)], lowerAll(terms)...)
	}
	for _, t := range r.Critical {
		d.critical[strings.ToLower(t)] = struct{}{}
	}
	return d
}

// Detect returns at most one flag per category with the union of its matched
// terms, ordered by first occurrence in the text. emojiCount is the
// normalizer's emoji signal.
func (d *Detector) Detect(text string, emojiCount int) []domain.RiskFlag {
	lower := strings.ToLower(text)

	type hit struct {
		term string
		at   int
	}
	found := map[domain.RiskCategory][]hit{}

	for _, cat := range domain.RiskCategories {
		for _, kw := range d.keywords[cat] {
			if idx := strings.Index(lower, kw); idx >= 0 {
				found[cat] = append(found[cat], hit{term: kw, at: idx})
			}
		}
	}

	if len(found) == 0 {
		return nil
	}

	multiCategory := len(found) >= 2

	var flags []domain.RiskFlag
	for _, cat := range domain.RiskCategories {
		hits, ok := found[cat]
		if !ok {
			continue
		}
		// order matched terms by their first occurrence in the text
		sort.SliceStable(hits, func(a, b int) bool { return hits[a].at < hits[b].at })
		terms := make([]string, len(hits))
		for i, h := range hits {
			terms[i] = h.term
		}

		flags = append(flags, domain.RiskFlag{
			Category:     cat,
			Severity:     d.severity(terms, multiCategory, emojiCount),
			MatchedTerms: terms,
		})
	}
	return flags
}

func (d *Detector) severity(terms []string, multiCategory bool, emojiCount int) domain.Severity {
	if multiCategory || d.anyCritical(terms) {
		return domain.SeverityHigh
	}
	if len(terms) == 1 {
		return domain.SeverityMedium
	}
	if emojiCount >= emojiEscalation {
		return domain.SeverityMedium
	}
	return domain.SeverityLow
}

func (d *Detector) anyCritical(terms []string) bool {
	for _, t := range terms {
		if _, ok := d.critical[t]; ok {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
