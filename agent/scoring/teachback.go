package scoring

import (
	"strings"
	"unicode"
)

// Teach-back scoring: how well does a learner's own explanation cover the
// keywords of a reference summary.

const (
	maxKeywords  = 6
	minTokenLen  = 4
	strongCutoff = 0.6
	weakCutoff   = 0.3
)

type Tier string

const (
	TierStrong   Tier = "strong"
	TierModerate Tier = "moderate"
	TierWeak     Tier = "weak"
)

// Result is the outcome of one teach-back scoring call.
type Result struct {
	Ratio    float64
	Matched  []string
	Keywords []string
	Tier     Tier
}

// Feedback returns the fixed tone message and improvement suggestion for the
// tier.
func (t Tier) Feedback() (message, suggestion string) {
	switch t {
	case TierStrong:
		return "Excellent explanation! You clearly understand the key ideas.",
			"Try teaching it to someone else next, or tackle a harder example."
	case TierModerate:
		return "Good start, you covered some of the important points.",
			"Review the parts you skipped and try explaining it again in your own words."
	default:
		return "That explanation missed most of the key ideas.",
			"Re-read the summary, then try again focusing on what happens and why."
	}
}

// Keywords derives the keyword set from a reference summary: tokens longer
// than 3 characters, case-folded, punctuation stripped, deduplicated, capped
// at 6, in source order.
func Keywords(summary string) []string {
	tokens := tokenize(summary)
	seen := make(map[string]struct{}, maxKeywords)
	var out []string
	for _, tok := range tokens {
		if len(tok) < minTokenLen {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

// Score tokenizes the candidate response the same way as the summary and
// returns the keyword-overlap ratio and its tier.
func Score(summary, response string) Result {
	keywords := Keywords(summary)

	responseTokens := make(map[string]struct{})
	for _, tok := range tokenize(response) {
		responseTokens[tok] = struct{}{}
	}

	var matched []string
	for _, kw := range keywords {
		if _, ok := responseTokens[kw]; ok {
			matched = append(matched, kw)
		}
	}

	denominator := len(keywords)
	if denominator < 1 {
		denominator = 1
	}
	ratio := float64(len(matched)) / float64(denominator)

	tier := TierWeak
	switch {
	case ratio > strongCutoff:
		tier = TierStrong
	case ratio > weakCutoff:
		tier = TierModerate
	}

	return Result{
		Ratio:    ratio,
		Matched:  matched,
		Keywords: keywords,
		Tier:     tier,
	}
}

func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}
