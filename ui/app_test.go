package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeon/adapters/memledger"
	"aeon/adapters/memstore"
	"aeon/app"
	"aeon/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store := memstore.New(time.Hour)
	bank := models.DefaultQuestionBank()
	ledger := memledger.New()
	sessions := app.NewSessionService(store, bank, ledger)
	profiles := app.NewProfileService(store, bank, nil)

	a, err := NewApp(Config{Port: "0", GinMode: "test"}, sessions, profiles, ledger)
	require.NoError(t, err)
	return a
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func createSession(t *testing.T, a *App) string {
	t.Helper()
	rec := doJSON(t, a.Handler(), http.MethodPost, "/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeJSON(t, rec, &resp)
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestSessionLifecycle(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	rec := doJSON(t, a.Handler(), http.MethodGet, "/session/"+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Completed         bool `json:"completed"`
		QuestionsAnswered int  `json:"questions_answered"`
		TotalQuestions    int  `json:"total_questions"`
	}
	decodeJSON(t, rec, &status)
	assert.False(t, status.Completed)
	assert.Equal(t, 10, status.TotalQuestions)

	rec = doJSON(t, a.Handler(), http.MethodPost, "/session/"+token+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, a.Handler(), http.MethodGet, "/session/"+token, nil)
	decodeJSON(t, rec, &status)
	assert.True(t, status.Completed)
}

func TestUnknownTokenIs404(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler(), http.MethodGet, "/session/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestionWalkUntilExhaustion(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/question/"+token, map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code)

		var q map[string]string
		decodeJSON(t, rec, &q)
		require.NotEmpty(t, q["question_id"])
		assert.False(t, seen[q["question_id"]], "question %s dispensed twice", q["question_id"])
		seen[q["question_id"]] = true

		answer := models.AnswerPayload{
			Kind: models.AnswerKindAeon,
			Aeon: &models.AeonAnswer{QuestionID: q["question_id"], Text: fmt.Sprintf("answer number %d", i)},
		}
		rec = doJSON(t, a.Handler(), http.MethodPost, "/session/"+token+"/answer", answer)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Pool exhausted: stable 404 on every further call
	for i := 0; i < 2; i++ {
		rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/question/"+token, map[string]string{})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp map[string]string
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "all questions asked", resp["detail"])
	}
}

func TestAnswerForUndispensedQuestionRejected(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	answer := models.AnswerPayload{
		Kind: models.AnswerKindAeon,
		Aeon: &models.AeonAnswer{QuestionID: "q_7", Text: "sneaky"},
	}
	rec := doJSON(t, a.Handler(), http.MethodPost, "/session/"+token+"/answer", answer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswerAfterCompletionForbidden(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/question/"+token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	var q map[string]string
	decodeJSON(t, rec, &q)

	rec = doJSON(t, a.Handler(), http.MethodPost, "/session/"+token+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	answer := models.AnswerPayload{
		Kind: models.AnswerKindAeon,
		Aeon: &models.AeonAnswer{QuestionID: q["question_id"], Text: "too late"},
	}
	rec = doJSON(t, a.Handler(), http.MethodPost, "/session/"+token+"/answer", answer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGlyphAndSummaryLocalPath(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/glyph/"+token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	var glyph map[string]string
	decodeJSON(t, rec, &glyph)
	assert.Contains(t, glyph["glyph"], "Starter")

	rec = doJSON(t, a.Handler(), http.MethodPost, "/aeon/summary/"+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]string
	decodeJSON(t, rec, &summary)
	assert.Contains(t, summary["summary"], "Interview analysis started")
}

func TestTaskFallback(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/task/"+token, map[string]string{
		"candidate": "Alex",
		"position":  "Team Lead",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var task map[string]string
	decodeJSON(t, rec, &task)
	assert.NotEmpty(t, task["task"])
	assert.NotEmpty(t, task["example"])
}

func TestLegacyQuestionByHistoryLength(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/question", map[string]interface{}{
		"history": []map[string]string{{"question": "q", "answer": "a"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	decodeJSON(t, rec, &resp)
	// Second question in bank order
	assert.Contains(t, resp["question"], "ideal working day")

	history := make([]map[string]string, 10)
	for i := range history {
		history[i] = map[string]string{"question": "q", "answer": "a"}
	}
	rec = doJSON(t, a.Handler(), http.MethodPost, "/aeon/question", map[string]interface{}{"history": history})
	require.Equal(t, http.StatusOK, rec.Code)
	var exhausted map[string]interface{}
	decodeJSON(t, rec, &exhausted)
	assert.Nil(t, exhausted["question"])
}

func TestLegacyGlyphThresholds(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/glyph", map[string]interface{}{
		"results": []map[string]string{{"question": "q", "answer": "short"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var glyph map[string]string
	decodeJSON(t, rec, &glyph)
	assert.Contains(t, glyph["glyph"], "Starter")
}

func TestLegacySummaryAndTask(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler(), http.MethodPost, "/aeon/summary", map[string]interface{}{
		"history": []map[string]string{{"question": "q", "answer": "a"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]string
	decodeJSON(t, rec, &summary)
	assert.Contains(t, summary["summary"], "answered 1 questions")

	rec = doJSON(t, a.Handler(), http.MethodPost, "/aeon/task", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var task map[string]string
	decodeJSON(t, rec, &task)
	assert.NotEmpty(t, task["task"])
}

func TestTriviaFlow(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler(), http.MethodGet, "/test/1?lang=en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var test models.TriviaTest
	decodeJSON(t, rec, &test)
	require.Len(t, test.Questions, 2)
	assert.Equal(t, "Programming Test", test.Title)

	// Without a lang parameter the Russian variant is served
	rec = doJSON(t, a.Handler(), http.MethodGet, "/test/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &test)
	assert.Equal(t, "Тест по программированию", test.Title)

	rec = doJSON(t, a.Handler(), http.MethodGet, "/test/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// One correct, one wrong
	submit := map[string]interface{}{
		"answers": []models.TriviaAnswer{
			{QuestionID: 1, AnswerID: 1},
			{QuestionID: 2, AnswerID: 3},
		},
	}
	rec = doJSON(t, a.Handler(), http.MethodPost, "/test/1/submit", submit)
	require.Equal(t, http.StatusOK, rec.Code)
	var submitResp map[string]int
	decodeJSON(t, rec, &submitResp)
	require.Equal(t, 1, submitResp["result_id"])

	rec = doJSON(t, a.Handler(), http.MethodGet, "/testresult/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]interface{}
	decodeJSON(t, rec, &result)
	assert.Equal(t, float64(50), result["score"])

	rec = doJSON(t, a.Handler(), http.MethodGet, "/testresult/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, a.Handler(), http.MethodPost, "/test/1/autosave", submit)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler(), http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]int
	decodeJSON(t, rec, &stats)
	assert.Zero(t, stats["sessions"])

	createSession(t, a)
	rec = doJSON(t, a.Handler(), http.MethodGet, "/stats", nil)
	decodeJSON(t, rec, &stats)
	assert.Equal(t, 1, stats["sessions"])
	assert.Equal(t, 50, stats["avg_score"])
}

func TestExpiredTokenForbiddenButResultServed(t *testing.T) {
	now := time.Now().UTC()
	store := memstore.NewWithClock(time.Hour, func() time.Time { return now })
	bank := models.DefaultQuestionBank()
	ledger := memledger.New()
	sessions := app.NewSessionService(store, bank, ledger)
	profiles := app.NewProfileService(store, bank, nil)
	a, err := NewApp(Config{GinMode: "test"}, sessions, profiles, ledger)
	require.NoError(t, err)

	token := createSession(t, a)
	now = now.Add(2 * time.Hour)

	rec := doJSON(t, a.Handler(), http.MethodGet, "/session/"+token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, a.Handler(), http.MethodGet, "/result/"+token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminPages(t *testing.T) {
	a := newTestApp(t)
	token := createSession(t, a)

	for _, path := range []string{"/admin", "/admin/stats", "/admin/log", "/admin/session/" + token} {
		rec := doJSON(t, a.Handler(), http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}

	rec := doJSON(t, a.Handler(), http.MethodGet, "/admin/export/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token,created_at")

	rec = doJSON(t, a.Handler(), http.MethodPost, "/admin/session/"+token+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
