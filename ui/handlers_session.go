package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aeon/internal/errors"
	"aeon/models"
)

func (a *App) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := a.sessions.Create(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"token": session.Token})
}

func (a *App) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	status, err := a.sessions.Status(token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (a *App) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var payload models.AnswerPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	// Infer the variant when older clients omit the kind tag
	if payload.Kind == "" {
		switch {
		case payload.Aeon != nil:
			payload.Kind = models.AnswerKindAeon
		case payload.Trivia != nil:
			payload.Kind = models.AnswerKindTrivia
		default:
			writeError(w, errors.InvalidInput("answer payload must carry a trivia or aeon variant"))
			return
		}
	}

	if err := a.sessions.SubmitAnswer(r.Context(), token, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (a *App) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := a.sessions.Complete(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (a *App) handleResult(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	result, err := a.sessions.Result(token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.sessions.Stats())
}
