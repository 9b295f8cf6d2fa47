package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"aeon/domain/scoring"
	"aeon/internal/errors"
	"aeon/models"
	"aeon/ports"
)

// AeonEnricher calls the external text-generation service to replace the
// locally computed glyph/profile and task text. Every failure path maps to
// ENRICHMENT_UNAVAILABLE so callers can fall back without inspecting the
// cause.
type AeonEnricher struct {
	glyphClient *StructuredClient[scoring.GlyphProfile]
	taskClient  *StructuredClient[ports.TaskSpec]
}

// NewAeonEnricher creates an enricher backed by the OpenAI structured client
func NewAeonEnricher(config *models.AIConfig) *AeonEnricher {
	return &AeonEnricher{
		glyphClient: NewStructuredClient[scoring.GlyphProfile](config),
		taskClient:  NewStructuredClient[ports.TaskSpec](config),
	}
}

var _ ports.Enricher = (*AeonEnricher)(nil)

// EnrichGlyph asks the model for a glyph and behavioral profile derived
// from the candidate's answers
func (e *AeonEnricher) EnrichGlyph(ctx context.Context, answers map[string]string) (*scoring.GlyphProfile, error) {
	questionIDs := make([]string, 0, len(answers))
	for id := range answers {
		questionIDs = append(questionIDs, id)
	}
	sort.Strings(questionIDs)

	var b strings.Builder
	b.WriteString("Here are the candidate's interview results:\n")
	for _, id := range questionIDs {
		fmt.Fprintf(&b, "%s: %s\n", id, answers[id])
	}
	b.WriteString(`Generate a glyph and a behavioral profile. Reply with JSON: {"glyph": ..., "profile": ...}`)

	result, err := e.glyphClient.GetJSONResponse(ctx, "", b.String())
	if err != nil {
		return nil, errors.EnrichmentUnavailable(err)
	}
	if result.Glyph == "" || result.Profile == "" {
		return nil, errors.EnrichmentUnavailable(fmt.Errorf("incomplete glyph response"))
	}
	return result, nil
}

// EnrichTask asks the model for an assessment task tailored to the
// candidate and position
func (e *AeonEnricher) EnrichTask(ctx context.Context, candidate, position string) (*ports.TaskSpec, error) {
	prompt := fmt.Sprintf(
		`Generate an assessment task for candidate %s applying for the position of %s, plus an example solution. Reply with JSON: {"task": "...", "example": "..."}`,
		candidate, position,
	)

	result, err := e.taskClient.GetJSONResponse(ctx, "", prompt)
	if err != nil {
		return nil, errors.EnrichmentUnavailable(err)
	}
	if result.Task == "" {
		return nil, errors.EnrichmentUnavailable(fmt.Errorf("incomplete task response"))
	}
	return result, nil
}
