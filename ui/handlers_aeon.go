package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aeon/domain/scoring"
)

func (a *App) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	question, ok, err := a.sessions.NextQuestion(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "all questions asked"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"question":    question.Text,
		"type":        question.Category,
		"question_id": question.ID,
	})
}

func (a *App) handleGlyph(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	profile, err := a.profiles.Glyph(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	summary, err := a.profiles.Summary(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (a *App) handleTask(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var body struct {
		Candidate string `json:"candidate"`
		Position  string `json:"position"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	task, err := a.profiles.Task(r.Context(), token, body.Candidate, body.Position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Token-less handlers recompute everything from client-supplied history.
// They predate session tokens and are kept for older clients.

func (a *App) handleLegacyQuestion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		History []scoring.LegacyResult `json:"history"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	questions := a.bank.All()
	if len(body.History) >= len(questions) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"question": nil})
		return
	}
	question := questions[len(body.History)]
	writeJSON(w, http.StatusOK, map[string]string{
		"question": question.Text,
		"type":     question.Category,
	})
}

func (a *App) handleLegacyGlyph(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Results []scoring.LegacyResult `json:"results"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, scoring.LegacyGlyph(body.Results))
}

func (a *App) handleLegacySummary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		History []scoring.LegacyResult `json:"history"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, scoring.LegacySummary(len(body.History)))
}

func (a *App) handleLegacyTask(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.profiles.LegacyTask())
}
