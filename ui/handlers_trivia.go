package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"aeon/models"
)

// triviaResults stores graded quiz submissions keyed by result id
type triviaResults struct {
	mu      sync.Mutex
	nextID  int
	results map[int]triviaResult
}

type triviaResult struct {
	Score   int    `json:"score"`
	Details string `json:"details"`
}

func newTriviaResults() *triviaResults {
	return &triviaResults{nextID: 1, results: make(map[int]triviaResult)}
}

func (t *triviaResults) add(result triviaResult) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.results[id] = result
	return id
}

func (t *triviaResults) get(id int) (triviaResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	result, ok := t.results[id]
	return result, ok
}

func (a *App) handleGetTest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id != 1 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "test not found"})
		return
	}
	writeJSON(w, http.StatusOK, models.TriviaTestForLang(r.URL.Query().Get("lang")))
}

func (a *App) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id != 1 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "test not found"})
		return
	}

	var body struct {
		Answers []models.TriviaAnswer `json:"answers"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	test := models.TriviaTestForLang("")
	score := test.Grade(body.Answers)
	resultID := a.trivia.add(triviaResult{
		Score:   score,
		Details: fmt.Sprintf("%d of %d answers graded", len(body.Answers), len(test.Questions)),
	})
	writeJSON(w, http.StatusOK, map[string]int{"result_id": resultID})
}

func (a *App) handleTestResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "result not found"})
		return
	}
	result, ok := a.trivia.get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "result not found"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAutosaveTest accepts draft answers without grading them
func (a *App) handleAutosaveTest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id != 1 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "test not found"})
		return
	}

	var body struct {
		Answers []models.TriviaAnswer `json:"answers"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
