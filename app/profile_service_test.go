package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeon/adapters/memstore"
	"aeon/domain/scoring"
	"aeon/internal/errors"
	"aeon/models"
	"aeon/ports"
)

type stubEnricher struct {
	glyph      *scoring.GlyphProfile
	task       *ports.TaskSpec
	err        error
	glyphCalls int
	taskCalls  int
}

func (s *stubEnricher) EnrichGlyph(_ context.Context, _ map[string]string) (*scoring.GlyphProfile, error) {
	s.glyphCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.glyph, nil
}

func (s *stubEnricher) EnrichTask(_ context.Context, _, _ string) (*ports.TaskSpec, error) {
	s.taskCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.task, nil
}

func seedSession(t *testing.T, store *memstore.SessionStore, bank *models.QuestionBank, answers int) *models.Session {
	t.Helper()
	session := store.Create()
	for i := 0; i < answers; i++ {
		question, ok := session.Dispense(bank)
		require.True(t, ok)
		payload := models.AnswerPayload{
			Kind: models.AnswerKindAeon,
			Aeon: &models.AeonAnswer{QuestionID: question.ID, Text: fmt.Sprintf("answer %d with a bit of text", i)},
		}
		require.NoError(t, session.Submit(payload))
	}
	return session
}

func TestGlyphWithoutEnricherUsesLocalProfile(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	service := NewProfileService(store, bank, nil)

	session := seedSession(t, store, bank, 2)
	profile, err := service.Glyph(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, scoring.ComputeGlyphProfile(session.AnswersSnapshot(), bank), profile)
}

func TestGlyphEnrichmentFailureFallsBack(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	enricher := &stubEnricher{err: errors.EnrichmentUnavailable(fmt.Errorf("upstream down"))}
	service := NewProfileService(store, bank, enricher)

	session := seedSession(t, store, bank, 2)
	profile, err := service.Glyph(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, enricher.glyphCalls)
	assert.Equal(t, scoring.ComputeGlyphProfile(session.AnswersSnapshot(), bank), profile)
}

func TestGlyphEnrichmentSuccess(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	enricher := &stubEnricher{glyph: &scoring.GlyphProfile{Glyph: "🌟 Visionary", Profile: "Sees around corners."}}
	service := NewProfileService(store, bank, enricher)

	session := seedSession(t, store, bank, 1)
	profile, err := service.Glyph(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "🌟 Visionary", profile.Glyph)
}

func TestGlyphEmptySessionSkipsEnrichment(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	enricher := &stubEnricher{glyph: &scoring.GlyphProfile{Glyph: "x", Profile: "y"}}
	service := NewProfileService(store, bank, enricher)

	session := store.Create()
	profile, err := service.Glyph(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Zero(t, enricher.glyphCalls)
	assert.Equal(t, scoring.GlyphStarter, profile.Glyph)
}

func TestGlyphUnknownToken(t *testing.T) {
	service := NewProfileService(memstore.New(time.Hour), models.DefaultQuestionBank(), nil)

	_, err := service.Glyph(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSessionNotFound, errors.GetCode(err))
}

func TestSummaryNarrative(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	service := NewProfileService(store, bank, nil)

	session := seedSession(t, store, bank, 3)
	summary, err := service.Summary(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Contains(t, summary, "Interview analysis complete")
	assert.Contains(t, summary, "Answered 3 of 10 questions")
}

func TestTaskFallbackWhenEnrichmentFails(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	enricher := &stubEnricher{err: fmt.Errorf("network gone")}
	service := NewProfileService(store, bank, enricher)

	session := store.Create()
	task, err := service.Task(context.Background(), session.Token, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, enricher.taskCalls)
	assert.True(t, strings.Contains(task.Task, "development plan"))
	assert.NotEmpty(t, task.Example)
}

func TestTaskEnrichmentSuccess(t *testing.T) {
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	enricher := &stubEnricher{task: &ports.TaskSpec{Task: "Design a service", Example: "Start with the API"}}
	service := NewProfileService(store, bank, enricher)

	session := store.Create()
	task, err := service.Task(context.Background(), session.Token, "Alex", "Team Lead")
	require.NoError(t, err)
	assert.Equal(t, "Design a service", task.Task)
}

func TestTaskRequiresValidToken(t *testing.T) {
	service := NewProfileService(memstore.New(time.Hour), models.DefaultQuestionBank(), nil)

	_, err := service.Task(context.Background(), "missing", "Alex", "Team Lead")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSessionNotFound, errors.GetCode(err))
}

func TestLegacyTaskWithoutToken(t *testing.T) {
	service := NewProfileService(memstore.New(time.Hour), models.DefaultQuestionBank(), nil)

	task := service.LegacyTask()
	assert.NotEmpty(t, task.Task)
	assert.NotEmpty(t, task.Example)
}
