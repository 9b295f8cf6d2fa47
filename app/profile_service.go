package app

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"aeon/domain/scoring"
	"aeon/internal"
	"aeon/models"
	"aeon/ports"
)

const (
	defaultCandidateName = "Candidate"
	defaultPositionName  = "Specialist"

	fallbackTask = "Prepare a 30/60/90-day development plan for your future team: " +
		"key goals, the skills you would grow, and how you would measure progress."
	fallbackTaskExample = "Example: in the first 30 days, map the team's current processes and " +
		"meet every member one on one; by day 60, agree on two improvement initiatives; " +
		"by day 90, present measurable results to stakeholders."
)

// ProfileService produces candidate-facing profile artifacts: the glyph,
// the summary report and the follow-up task. Enrichment through the
// external model is best-effort; every path has a deterministic local
// fallback.
type ProfileService struct {
	store    ports.SessionStore
	bank     *models.QuestionBank
	enricher ports.Enricher
	flight   singleflight.Group
}

// NewProfileService creates a profile service. The enricher may be nil,
// in which case every result is computed locally.
func NewProfileService(store ports.SessionStore, bank *models.QuestionBank, enricher ports.Enricher) *ProfileService {
	return &ProfileService{
		store:    store,
		bank:     bank,
		enricher: enricher,
	}
}

// Glyph returns the candidate's glyph and behavioral profile. If an
// enricher is configured, concurrent requests for the same token share a
// single upstream call; any enrichment failure falls back to the local
// heuristic.
func (p *ProfileService) Glyph(ctx context.Context, token string) (scoring.GlyphProfile, error) {
	session, err := p.store.GetActive(token)
	if err != nil {
		return scoring.GlyphProfile{}, err
	}

	answers := session.AnswersSnapshot()
	local := scoring.ComputeGlyphProfile(answers, p.bank)
	if p.enricher == nil || len(answers) == 0 {
		return local, nil
	}

	result, err, _ := p.flight.Do(token, func() (interface{}, error) {
		return p.enricher.EnrichGlyph(ctx, answers)
	})
	if err != nil {
		internal.DefaultLogger.Warn("Glyph enrichment failed for %s, using local profile: %v", token, err)
		return local, nil
	}
	return *result.(*scoring.GlyphProfile), nil
}

// Summary builds the markdown assessment report from the session's
// answers and elapsed time
func (p *ProfileService) Summary(ctx context.Context, token string) (string, error) {
	session, err := p.store.GetActive(token)
	if err != nil {
		return "", err
	}

	elapsed := time.Now().UTC().Sub(session.CreatedAt)
	return scoring.BuildSummary(session.AnswersSnapshot(), p.bank, elapsed), nil
}

// Task returns a follow-up assessment task for the candidate. Token
// validation applies; generation falls back to a fixed task when
// enrichment is unavailable.
func (p *ProfileService) Task(ctx context.Context, token, candidate, position string) (ports.TaskSpec, error) {
	if _, err := p.store.GetActive(token); err != nil {
		return ports.TaskSpec{}, err
	}
	return p.generateTask(ctx, candidate, position), nil
}

// LegacyTask serves the token-less task endpoint kept for older clients.
// The legacy path never calls the model.
func (p *ProfileService) LegacyTask() ports.TaskSpec {
	return ports.TaskSpec{
		Task:    "Describe your approach to solving difficult problems",
		Example: "I analyze the problem, break it into parts, look for solutions, test and roll out",
	}
}

func (p *ProfileService) generateTask(ctx context.Context, candidate, position string) ports.TaskSpec {
	if candidate == "" {
		candidate = defaultCandidateName
	}
	if position == "" {
		position = defaultPositionName
	}

	fallback := ports.TaskSpec{Task: fallbackTask, Example: fallbackTaskExample}
	if p.enricher == nil {
		return fallback
	}

	task, err := p.enricher.EnrichTask(ctx, candidate, position)
	if err != nil {
		internal.DefaultLogger.Warn("Task enrichment failed for %s/%s, using fallback: %v", candidate, position, err)
		return fallback
	}
	return *task
}
