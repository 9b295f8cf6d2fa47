package analytics

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"aeon/domain/scoring"
	"aeon/models"
)

// ScoreDistribution summarizes performance scores across all sessions for
// the admin dashboard
type ScoreDistribution struct {
	Count          int     `json:"count"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	StdDev         float64 `json:"std_dev"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Q25            float64 `json:"q25"`
	Q75            float64 `json:"q75"`
	HighPerformers int     `json:"high_performers"`
	// EstimatedTopShare is the share of candidates expected to score 80 or
	// above under a normal fit of the observed scores
	EstimatedTopShare float64 `json:"estimated_top_share"`
}

// highPerformerThreshold marks the score at which a candidate lands in the
// top glyph tier
const highPerformerThreshold = 80

// AnalyzeScores computes the score distribution over the given sessions.
// Sessions with no recorded answers score zero and are included.
func AnalyzeScores(sessions []*models.Session, bank *models.QuestionBank) (ScoreDistribution, error) {
	dist := ScoreDistribution{Count: len(sessions)}
	if len(sessions) == 0 {
		return dist, nil
	}

	scores := make([]float64, 0, len(sessions))
	for _, session := range sessions {
		score := float64(scoring.PerformanceScore(session.AnswersSnapshot(), bank))
		scores = append(scores, score)
		if score >= highPerformerThreshold {
			dist.HighPerformers++
		}
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return dist, err
	}
	median, err := stats.Median(scores)
	if err != nil {
		return dist, err
	}
	min, err := stats.Min(scores)
	if err != nil {
		return dist, err
	}
	max, err := stats.Max(scores)
	if err != nil {
		return dist, err
	}

	dist.Mean = mean
	dist.Median = median
	dist.Min = min
	dist.Max = max

	// Percentile needs at least as many samples as the implied bucket count
	if len(scores) >= 2 {
		if q25, err := stats.Percentile(scores, 25); err == nil {
			dist.Q25 = q25
		}
		if q75, err := stats.Percentile(scores, 75); err == nil {
			dist.Q75 = q75
		}
	} else {
		dist.Q25 = scores[0]
		dist.Q75 = scores[0]
	}

	// Sample standard deviation divides by n-1 and is NaN for one score
	if len(scores) >= 2 {
		dist.StdDev = stat.StdDev(scores, nil)
	}
	if dist.StdDev > 0 {
		normal := distuv.Normal{Mu: mean, Sigma: dist.StdDev}
		dist.EstimatedTopShare = 1 - normal.CDF(highPerformerThreshold)
	}

	return dist, nil
}
