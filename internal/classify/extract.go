package classify

import (
	"regexp"
	"strings"
)

var (
	lineSplit     = regexp.MustCompile(`\r?\n`)
	sentenceSplit = regexp.MustCompile(`[.!?]\s+`)
	enumMark      = regexp.MustCompile(`^[0-9]+\.|^•|^\-\s*`)

	// One word-bounded pattern per extraction verb, built once.
	verbPatterns = func() []*regexp.Regexp {
		patterns := make([]*regexp.Regexp, len(ExtractionVerbs))
		for i, v := range ExtractionVerbs {
			patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(v) + `\b`)
		}
		return patterns
	}()

	cuePattern = regexp.MustCompile(`(?i)` + strings.Join(RecommendationCues, "|"))
)

// minRecommendationLen filters out fragments left over from enumeration
// mark stripping.
const minRecommendationLen = 7

// ExtractRecommendations derives recommendation strings from raw message
// text: enumerated or cue-phrase lines first, then sentences containing an
// extraction verb. A sentence is captured at most once even when several
// verbs match, and duplicates are dropped while preserving order.
func ExtractRecommendations(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var recs []string
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".!?"))
		if len(s) < minRecommendationLen || seen[s] {
			return
		}
		seen[s] = true
		recs = append(recs, s)
	}

	lines := lineSplit.Split(text, -1)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if enumMark.MatchString(trimmed) || cuePattern.MatchString(trimmed) {
			add(enumMark.ReplaceAllString(trimmed, ""))
		}
	}

	// Sentence scan runs per line so a capture never spans lines.
	for _, line := range lines {
		for _, sentence := range sentenceSplit.Split(line, -1) {
			clean := strings.TrimSpace(sentence)
			if clean == "" {
				continue
			}
			for _, pattern := range verbPatterns {
				if pattern.MatchString(clean) {
					add(clean)
					break // one capture per sentence
				}
			}
		}
	}

	return recs
}
