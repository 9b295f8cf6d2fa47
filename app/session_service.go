package app

import (
	"context"
	"log"
	"time"

	"aeon/domain/scoring"
	"aeon/models"
	"aeon/ports"
)

// SessionService drives the interview session lifecycle: creation,
// question dispensing, answer submission and completion.
type SessionService struct {
	store  ports.SessionStore
	bank   *models.QuestionBank
	ledger ports.AuditLedger
}

// NewSessionService creates a session service
func NewSessionService(store ports.SessionStore, bank *models.QuestionBank, ledger ports.AuditLedger) *SessionService {
	return &SessionService{
		store:  store,
		bank:   bank,
		ledger: ledger,
	}
}

// SessionStatus is the safe external view of a session
type SessionStatus struct {
	Token             string    `json:"token"`
	CreatedAt         time.Time `json:"created_at"`
	Completed         bool      `json:"completed"`
	QuestionsAnswered int       `json:"questions_answered"`
	QuestionsAsked    int       `json:"questions_asked"`
	TotalQuestions    int       `json:"total_questions"`
	PerformanceScore  int       `json:"performance_score"`
}

// SessionResult is the final per-session rollup
type SessionResult struct {
	SessionID              string  `json:"session_id"`
	TotalTimeSeconds       int     `json:"total_time"`
	QuestionsAnswered      int     `json:"questions_answered"`
	CompletionRate         float64 `json:"completion_rate"`
	AvgSecondsPerQuestion  int     `json:"average_time_per_question"`
	PerformanceScore       int     `json:"performance_score"`
	CreatedAt              string  `json:"created_at"`
	CompletedAt            string  `json:"completed_at"`
}

// ServiceStats is the public aggregate view over all sessions
type ServiceStats struct {
	Sessions int `json:"sessions"`
	Answers  int `json:"answers"`
	AvgScore int `json:"avg_score"`
}

// Create starts a new session and returns it
func (s *SessionService) Create(ctx context.Context) *models.Session {
	session := s.store.Create()
	s.logEvent(ctx, "create_session", map[string]interface{}{"token": session.Token})
	return session
}

// NextQuestion dispenses the next unasked question in bank order. The
// second return value is false when the pool is exhausted, which is a
// normal terminal signal rather than an error.
func (s *SessionService) NextQuestion(ctx context.Context, token string) (models.QuestionRecord, bool, error) {
	session, err := s.store.GetActive(token)
	if err != nil {
		return models.QuestionRecord{}, false, err
	}

	question, ok := session.Dispense(s.bank)
	if !ok {
		return models.QuestionRecord{}, false, nil
	}

	s.logEvent(ctx, "dispense_question", map[string]interface{}{
		"token":       token,
		"question_id": question.ID,
	})
	return question, true, nil
}

// SubmitAnswer records an answer payload against the session
func (s *SessionService) SubmitAnswer(ctx context.Context, token string, payload models.AnswerPayload) error {
	session, err := s.store.GetActive(token)
	if err != nil {
		return err
	}
	if err := session.Submit(payload); err != nil {
		return err
	}

	details := map[string]interface{}{"token": token, "kind": string(payload.Kind)}
	if payload.Kind == models.AnswerKindAeon && payload.Aeon != nil {
		details["question_id"] = payload.Aeon.QuestionID
	}
	s.logEvent(ctx, "save_answer", details)
	return nil
}

// Complete marks the session completed; further submissions are rejected
func (s *SessionService) Complete(ctx context.Context, token string) error {
	session, err := s.store.GetActive(token)
	if err != nil {
		return err
	}
	session.Complete()
	s.logEvent(ctx, "complete_session", map[string]interface{}{"token": token})
	return nil
}

// Status returns the external session view, failing on expired tokens
func (s *SessionService) Status(token string) (SessionStatus, error) {
	session, err := s.store.GetActive(token)
	if err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{
		Token:             session.Token,
		CreatedAt:         session.CreatedAt,
		Completed:         session.IsCompleted(),
		QuestionsAnswered: session.AnsweredCount(),
		QuestionsAsked:    session.AskedCount(),
		TotalQuestions:    s.bank.Size(),
		PerformanceScore:  scoring.PerformanceScore(session.AnswersSnapshot(), s.bank),
	}, nil
}

// Result builds the final rollup. It is served even for expired sessions
// so a candidate can still retrieve their outcome.
func (s *SessionService) Result(token string) (SessionResult, error) {
	session, err := s.store.Get(token)
	if err != nil {
		return SessionResult{}, err
	}

	now := time.Now().UTC()
	totalTime := now.Sub(session.CreatedAt)
	answered := session.AnsweredCount()

	completionRate := 0.0
	if s.bank.Size() > 0 {
		completionRate = float64(answered) / float64(s.bank.Size()) * 100
	}
	avgPerQuestion := 0
	if answered > 0 {
		avgPerQuestion = int(totalTime.Seconds()) / answered
	}

	return SessionResult{
		SessionID:             session.Token,
		TotalTimeSeconds:      int(totalTime.Seconds()),
		QuestionsAnswered:     answered,
		CompletionRate:        completionRate,
		AvgSecondsPerQuestion: avgPerQuestion,
		PerformanceScore:      scoring.PerformanceScore(session.AnswersSnapshot(), s.bank),
		CreatedAt:             session.CreatedAt.Format(time.RFC3339),
		CompletedAt:           now.Format(time.RFC3339),
	}, nil
}

// Delete removes a session; idempotent
func (s *SessionService) Delete(ctx context.Context, token string) {
	s.store.Delete(token)
	s.logEvent(ctx, "delete_session", map[string]interface{}{"token": token})
}

// Stats returns the public aggregate counters. AvgScore is a placeholder
// kept for compatibility with older clients; the admin dashboard computes
// the real distribution.
func (s *SessionService) Stats() ServiceStats {
	sessions := s.store.Snapshot()
	answers := 0
	for _, session := range sessions {
		answers += session.AnsweredCount()
	}
	avgScore := 0
	if len(sessions) > 0 {
		avgScore = 50
	}
	return ServiceStats{
		Sessions: len(sessions),
		Answers:  answers,
		AvgScore: avgScore,
	}
}

// Sessions returns all sessions for administrative views
func (s *SessionService) Sessions() []*models.Session {
	return s.store.Snapshot()
}

// Bank returns the question bank
func (s *SessionService) Bank() *models.QuestionBank {
	return s.bank
}

// logEvent appends to the audit ledger; ledger failures never fail the
// request that produced the event
func (s *SessionService) logEvent(ctx context.Context, action string, details map[string]interface{}) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Append(ctx, models.NewAuditEvent(action, details)); err != nil {
		log.Printf("[SessionService] Failed to append audit event %s: %v", action, err)
	}
}
