package nlp

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywordLimit caps the ranked keywords per review.
const DefaultKeywordLimit = 10

var reToken = regexp.MustCompile(`[a-zA-ZäöüÄÖÜß]{3,}`)

// ExtractKeywords ranks the salient terms of a normalized text by term
// frequency, stopwords excluded. Ties rank by first occurrence. At most limit
// terms are returned (DefaultKeywordLimit when limit <= 0); a text with no
// qualifying terms yields an empty slice, not an error.
func ExtractKeywords(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	type stat struct {
		count int
		first int
	}
	stats := map[string]*stat{}
	order := []string{}

	for i, tok := range reToken.FindAllString(text, -1) {
		w := strings.ToLower(tok)
		if IsStopword(w) {
			continue
		}
		s, ok := stats[w]
		if !ok {
			s = &stat{first: i}
			stats[w] = s
			order = append(order, w)
		}
		s.count++
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := stats[order[a]], stats[order[b]]
		if sa.count != sb.count {
			return sa.count > sb.count
		}
		return sa.first < sb.first
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
