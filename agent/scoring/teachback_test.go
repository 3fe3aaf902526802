package scoring

import (
	"math"
	"testing"
)

func TestKeywords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		summary string
		want    []string
	}{
		{
			name:    "short tokens and punctuation dropped",
			summary: "Plants use the sun's light, water, and CO2 to make food.",
			want:    []string{"plants", "light", "water", "make", "food"},
		},
		{
			name:    "deduplicated and capped",
			summary: "water water cycle describes evaporation condensation precipitation collection stages",
			want:    []string{"water", "cycle", "describes", "evaporation", "condensation", "precipitation"},
		},
		{
			name:    "empty summary",
			summary: "",
			want:    nil,
		},
	}
	for _, tc := range cases {
		got := Keywords(tc.summary)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: keywords = %v, want %v", tc.name, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: keywords = %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestScoreTiers(t *testing.T) {
	t.Parallel()

	summary := "Supply demand curves determine market equilibrium prices"

	cases := []struct {
		name     string
		response string
		tier     Tier
	}{
		{
			name:     "identical text scores strong",
			response: summary,
			tier:     TierStrong,
		},
		{
			name:     "partial overlap scores moderate",
			response: "supply and demand set the equilibrium I think",
			tier:     TierModerate,
		},
		{
			name:     "disjoint text scores weak",
			response: "photosynthesis happens inside chloroplasts",
			tier:     TierWeak,
		},
		{
			name:     "empty response scores weak",
			response: "",
			tier:     TierWeak,
		},
	}
	for _, tc := range cases {
		res := Score(summary, tc.response)
		if res.Tier != tc.tier {
			t.Fatalf("%s: tier = %s (ratio %.2f), want %s", tc.name, res.Tier, res.Ratio, tc.tier)
		}
	}
}

func TestScoreRatio(t *testing.T) {
	t.Parallel()

	summary := "alpha bravo charlie delta"
	res := Score(summary, "I remember alpha and charlie only")

	if got, want := res.Ratio, 0.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
	if len(res.Matched) != 2 || res.Matched[0] != "alpha" || res.Matched[1] != "charlie" {
		t.Fatalf("matched = %v, want [alpha charlie]", res.Matched)
	}
	if len(res.Keywords) != 4 {
		t.Fatalf("keywords = %v, want 4 entries", res.Keywords)
	}
}

func TestScoreEmptySummary(t *testing.T) {
	t.Parallel()

	res := Score("", "anything at all")
	if res.Ratio != 0 {
		t.Fatalf("ratio = %v, want 0", res.Ratio)
	}
	if res.Tier != TierWeak {
		t.Fatalf("tier = %s, want weak", res.Tier)
	}
}

func TestTierFeedbackDistinct(t *testing.T) {
	t.Parallel()

	seen := make(map[string]Tier)
	for _, tier := range []Tier{TierStrong, TierModerate, TierWeak} {
		message, suggestion := tier.Feedback()
		if message == "" || suggestion == "" {
			t.Fatalf("tier %s: empty feedback", tier)
		}
		if prev, dup := seen[message]; dup {
			t.Fatalf("tiers %s and %s share a message", prev, tier)
		}
		seen[message] = tier
	}
}
