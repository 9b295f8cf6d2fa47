package ports

import (
	"context"

	"aeon/domain/scoring"
)

// TaskSpec is a generated assessment task with a worked example
type TaskSpec struct {
	Task    string `json:"task"`
	Example string `json:"example"`
}

// Enricher is the optional external text-generation collaborator. Any
// error return is absorbed by the caller, which falls back to the local
// deterministic computation; enrichment is strictly best-effort.
type Enricher interface {
	EnrichGlyph(ctx context.Context, answers map[string]string) (*scoring.GlyphProfile, error)
	EnrichTask(ctx context.Context, candidate, position string) (*TaskSpec, error)
}
