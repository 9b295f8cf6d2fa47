package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"aeon/models"
)

// GlyphProfile is the categorical quality tier plus its narrative text
type GlyphProfile struct {
	Glyph   string `json:"glyph"`
	Profile string `json:"profile"`
}

// Glyph tier labels. The threshold ladder is the contract; the label
// wording is presentation.
const (
	GlyphMaster  = "🎯 Master Strategist"
	GlyphExpert  = "💡 Expert Communicator"
	GlyphRising  = "⚡ Rising Potential"
	GlyphStarter = "🚀 Enthusiastic Starter"
)

// Aggregates holds the per-session rollup used by scoring and narratives
type Aggregates struct {
	AnsweredCount  int
	AvgQuality     float64
	CompletionRate float64
	TechnicalCount int
	SoftCount      int
}

// Aggregate scores each recorded answer against its question's keywords and
// rolls the results up. Answers for questions no longer in the bank are
// skipped; that should not occur with an immutable bank.
func Aggregate(answers map[string]string, bank *models.QuestionBank) Aggregates {
	agg := Aggregates{}
	total := 0.0
	for questionID, text := range answers {
		q, ok := bank.ByID(questionID)
		if !ok {
			continue
		}
		total += float64(Score(text, q.Keywords).Score)
		agg.AnsweredCount++
		if q.Category == models.CategoryTechnical {
			agg.TechnicalCount++
		} else {
			agg.SoftCount++
		}
	}
	if agg.AnsweredCount == 0 {
		return agg
	}
	agg.AvgQuality = total / float64(agg.AnsweredCount)
	if bank.Size() > 0 {
		agg.CompletionRate = float64(agg.AnsweredCount) / float64(bank.Size()) * 100
	}
	return agg
}

// PerformanceScore combines average answer quality with a completion bonus
// into a single 0..100 integer
func PerformanceScore(answers map[string]string, bank *models.QuestionBank) int {
	agg := Aggregate(answers, bank)
	if agg.AnsweredCount == 0 {
		return 0
	}
	bonus := 0.0
	if bank.Size() > 0 {
		bonus = float64(agg.AnsweredCount) / float64(bank.Size()) * 20
	}
	return int(math.Max(0, math.Min(100, agg.AvgQuality+bonus)))
}

// ComputeGlyphProfile selects the quality tier and builds the narrative
func ComputeGlyphProfile(answers map[string]string, bank *models.QuestionBank) GlyphProfile {
	agg := Aggregate(answers, bank)
	if agg.AnsweredCount == 0 {
		return GlyphProfile{
			Glyph:   GlyphStarter,
			Profile: "The candidate has only just started the interview. Not enough data yet for a full analysis.",
		}
	}

	base := fmt.Sprintf(
		"Answered %d of %d questions (%.0f%% completion, %d technical / %d soft). Average answer quality: %.0f/100.",
		agg.AnsweredCount, bank.Size(), agg.CompletionRate, agg.TechnicalCount, agg.SoftCount, agg.AvgQuality,
	)

	switch {
	case agg.AvgQuality >= 80:
		return GlyphProfile{
			Glyph:   GlyphMaster,
			Profile: base + " The candidate demonstrated exceptional depth of thought, structured reasoning and readiness for leadership.",
		}
	case agg.AvgQuality >= 65:
		return GlyphProfile{
			Glyph:   GlyphExpert,
			Profile: base + " The candidate showed strong communication skills and can explain decisions in detail.",
		}
	case agg.AvgQuality >= 50:
		return GlyphProfile{
			Glyph:   GlyphRising,
			Profile: base + " The candidate showed good potential, adaptability and baseline professional competence.",
		}
	default:
		return GlyphProfile{
			Glyph:   GlyphStarter,
			Profile: base + " The candidate showed enthusiasm and baseline skills, and fits entry-level positions with room to grow.",
		}
	}
}

// BuildSummary renders the interview summary narrative as markdown
func BuildSummary(answers map[string]string, bank *models.QuestionBank, elapsed time.Duration) string {
	agg := Aggregate(answers, bank)
	if agg.AnsweredCount == 0 {
		return "📊 **Interview analysis started**\n\nThe interview has only just begun. Please answer the questions to receive a detailed analysis."
	}

	detailed := 0
	short := 0
	for questionID, text := range answers {
		q, ok := bank.ByID(questionID)
		if !ok {
			continue
		}
		metrics := Score(text, q.Keywords)
		if metrics.Score >= 65 {
			detailed++
		}
		if metrics.WordCount < 10 {
			short++
		}
	}

	var quality string
	switch {
	case detailed >= 7:
		quality = "✅ Excellent quality - the candidate gave detailed, thoughtful answers to most questions"
	case detailed >= 5:
		quality = "✅ Good quality - the candidate gave substantive answers to half the questions"
	default:
		quality = "⚠️ Basic quality - answers were brief, a more detailed follow-up interview is recommended"
	}

	var commLevel string
	switch {
	case agg.AvgQuality >= 65:
		commLevel = "high"
	case agg.AvgQuality >= 50:
		commLevel = "medium"
	default:
		commLevel = "basic"
	}

	var b strings.Builder
	b.WriteString("📊 **Interview analysis complete**\n\n")
	b.WriteString("**Interview statistics:**\n")
	fmt.Fprintf(&b, "- Answered %d of %d questions (%.0f%% completion)\n", agg.AnsweredCount, bank.Size(), agg.CompletionRate)
	fmt.Fprintf(&b, "- Average answer quality: %.0f/100\n", agg.AvgQuality)
	fmt.Fprintf(&b, "- Detailed answers: %d (%d%%)\n", detailed, percentOf(detailed, agg.AnsweredCount))
	fmt.Fprintf(&b, "- Brief answers: %d (%d%%)\n", short, percentOf(short, agg.AnsweredCount))
	fmt.Fprintf(&b, "- Category split: %d technical / %d soft\n", agg.TechnicalCount, agg.SoftCount)
	fmt.Fprintf(&b, "- Total time: %d minutes\n\n", int(elapsed.Minutes()))
	b.WriteString("**Answer quality:**\n")
	b.WriteString(quality + "\n\n")
	b.WriteString("**Recommendations:**\n")
	b.WriteString("- The candidate is ready for the next interview stage\n")
	b.WriteString("- A technical interview is recommended to verify hard skills\n")
	fmt.Fprintf(&b, "- Demonstrated a %s level of communication skills", commLevel)
	return b.String()
}

func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part) / float64(total) * 100)
}
