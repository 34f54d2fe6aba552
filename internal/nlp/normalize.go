package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"german_market/internal/domain"
)

var (
	reHTMLTag    = regexp.MustCompile(`<[^>]+>`)
	reURL        = regexp.MustCompile(`https?://\S+`)
	reEmail      = regexp.MustCompile(`\S+@\S+\.\S+`)
	reDisallowed = regexp.MustCompile(`[^\w\s.,!?äöüÄÖÜß\-'"()]`)
	reManyDots   = regexp.MustCompile(`\.{2,}`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// Normalize cleans a raw review text: HTML, URLs and addresses are removed,
// emoji are stripped but counted, whitespace is collapsed and the result is
// NFC-normalized. Returns domain.ErrEmptyInput when nothing survives, e.g. a
// review that was only emoji or whitespace.
func Normalize(raw string) (domain.NormalizedText, error) {
	text := norm.NFC.String(raw)

	emoji := countEmoji(text)

	text = reHTMLTag.ReplaceAllString(text, "")
	text = reURL.ReplaceAllString(text, "")
	text = reEmail.ReplaceAllString(text, "")
	// keep German letters and basic punctuation; this also drops emoji
	text = reDisallowed.ReplaceAllString(text, " ")
	text = reManyDots.ReplaceAllString(text, "...")
	text = reSpaces.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" {
		return domain.NormalizedText{}, domain.ErrEmptyInput
	}
	return domain.NormalizedText{Text: text, EmojiCount: emoji}, nil
}

// countEmoji counts base pictographs. VS16 and ZWJ are joining machinery,
// never counted, and a pictograph joined to the previous one by ZWJ extends
// that glyph instead of starting a new one, so 👩‍🚀 counts once.
func countEmoji(s string) int {
	n := 0
	joined := false
	for _, r := range s {
		switch {
		case r == 0x200D:
			joined = true
			continue
		case r == 0xFE0F: // variation selector, keep the join state
			continue
		case isEmoji(r):
			if !joined {
				n++
			}
		}
		joined = false
	}
	return n
}

// isEmoji covers the common emoji blocks: pictographs, transport symbols,
// emoticons, dingbats and the supplemental planes.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	}
	return false
}
