package scoring

import (
	"math"
	"strings"
)

// QualityMetrics describes the shallow lexical analysis of a single answer
type QualityMetrics struct {
	Score          int     `json:"score"`
	WordCount      int     `json:"word_count"`
	SentenceCount  int     `json:"sentence_count"`
	KeywordMatches int     `json:"keyword_matches"`
	KeywordRatio   float64 `json:"keyword_ratio"`
	HasExamples    bool    `json:"has_examples"`
	HasSpecifics   bool    `json:"has_specifics"`
}

// exampleMarkers signal that the answer backs claims with examples
var exampleMarkers = []string{"for example", "for instance", "such as", "e.g."}

// specificMarkers signal concrete, detail-oriented phrasing
var specificMarkers = []string{"specifically", "precisely", "exactly", "in particular", "concretely"}

// Score runs the answer quality heuristic against a question's keyword set.
// This deliberately rewards length, keyword overlap and surface markers of
// concreteness; it is not semantic analysis. The thresholds and weights are
// load-bearing: stored expectations depend on them.
func Score(answer string, keywords []string) QualityMetrics {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return QualityMetrics{}
	}

	metrics := QualityMetrics{
		WordCount:     len(strings.Fields(trimmed)),
		SentenceCount: countSentences(trimmed),
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			metrics.KeywordMatches++
		}
	}
	if len(keywords) > 0 {
		metrics.KeywordRatio = float64(metrics.KeywordMatches) / float64(len(keywords))
	}
	metrics.HasExamples = containsAny(lower, exampleMarkers)
	metrics.HasSpecifics = containsAny(lower, specificMarkers)

	score := 0.0

	// Length tier
	switch {
	case metrics.WordCount >= 50:
		score += 30
	case metrics.WordCount >= 20:
		score += 20
	case metrics.WordCount >= 10:
		score += 10
	}

	// Relevance, capped so keywords alone cannot dominate
	score += math.Min(30, metrics.KeywordRatio*100)

	if metrics.HasExamples {
		score += 15
	}
	if metrics.HasSpecifics {
		score += 10
	}

	// Structure
	if metrics.SentenceCount >= 3 {
		score += 10
	} else if metrics.SentenceCount >= 2 {
		score += 5
	}

	// Very short answers are capped no matter what they matched
	if metrics.WordCount < 5 {
		score = math.Min(score, 10)
	}

	metrics.Score = int(math.Max(0, math.Min(100, score)))
	return metrics
}

// countSentences counts non-empty segments split on periods
func countSentences(text string) int {
	count := 0
	for _, segment := range strings.Split(text, ".") {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
