package scoring

import "fmt"

// LegacyResult is one question/answer pair supplied by an older client.
// The token-less endpoints receive the whole history on every call.
type LegacyResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LegacyGlyph reproduces the original token-less analysis: average raw
// character length with fixed thresholds. It intentionally diverges from
// the keyword-aware scoring path and is kept only for older clients.
func LegacyGlyph(results []LegacyResult) GlyphProfile {
	if len(results) == 0 {
		return GlyphProfile{
			Glyph:   GlyphStarter,
			Profile: "Not enough data for analysis",
		}
	}

	totalLength := 0
	for _, r := range results {
		totalLength += len(r.Answer)
	}
	avgLength := float64(totalLength) / float64(len(results))

	switch {
	case avgLength > 100:
		return GlyphProfile{
			Glyph:   GlyphMaster,
			Profile: "The candidate showed excellent analytical ability and depth of thought.",
		}
	case avgLength > 50:
		return GlyphProfile{
			Glyph:   GlyphRising,
			Profile: "The candidate demonstrates good potential and communication skills.",
		}
	default:
		return GlyphProfile{
			Glyph:   GlyphStarter,
			Profile: "The candidate showed baseline skills and motivation to grow.",
		}
	}
}

// LegacySummaryReport is the token-less summary response shape
type LegacySummaryReport struct {
	Glyph          string `json:"glyph,omitempty"`
	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation"`
}

// LegacySummary builds the token-less summary from history length alone
func LegacySummary(historyLen int) LegacySummaryReport {
	if historyLen == 0 {
		return LegacySummaryReport{
			Summary:        "Not enough data for analysis",
			Recommendation: "The candidate needs to answer the questions first",
		}
	}
	return LegacySummaryReport{
		Glyph:          "📊 Analysis complete",
		Summary:        fmt.Sprintf("The candidate answered %d questions and showed baseline professional skills.", historyLen),
		Recommendation: "Recommended for further consideration",
	}
}
