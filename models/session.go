package models

import (
	"sync"
	"time"

	"aeon/internal/errors"
)

// AnswerKind discriminates the answer payload variants
type AnswerKind string

const (
	AnswerKindTrivia AnswerKind = "trivia"
	AnswerKindAeon   AnswerKind = "aeon"
)

// TriviaAnswer is a multiple-choice answer for the static trivia quiz
type TriviaAnswer struct {
	QuestionID int `json:"question_id"`
	AnswerID   int `json:"answer_id"`
}

// AeonAnswer is a free-text answer to a dispensed AEON interview question
type AeonAnswer struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// AnswerPayload is a tagged answer submission. Exactly one of Trivia or
// Aeon is set, matching Kind.
type AnswerPayload struct {
	Kind        AnswerKind    `json:"kind"`
	Trivia      *TriviaAnswer `json:"trivia,omitempty"`
	Aeon        *AeonAnswer   `json:"aeon,omitempty"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// Session holds the mutable per-token interview state.
// All state lives in process memory; there is no durability contract.
type Session struct {
	Token     string
	CreatedAt time.Time

	mu                sync.RWMutex
	lastActivity      time.Time
	completed         bool
	rawAnswers        []AnswerPayload
	askedQuestions    map[string]bool
	questionOrder     []string
	answersByQuestion map[string]string
}

// NewSession creates a fresh session for the given token
func NewSession(token string) *Session {
	now := time.Now().UTC()
	return &Session{
		Token:             token,
		CreatedAt:         now,
		lastActivity:      now,
		askedQuestions:    make(map[string]bool),
		answersByQuestion: make(map[string]string),
	}
}

// IsExpired reports whether the session token has outlived its TTL.
// Expiry is a pure function of wall-clock time, evaluated lazily on access.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.After(s.CreatedAt.Add(ttl))
}

// Dispense selects the first bank-order question not yet asked, marks it
// asked and records the dispensing order. The second return value is false
// when the pool is exhausted. The question counts as asked the moment it is
// returned, whether or not an answer ever arrives.
func (s *Session) Dispense(bank *QuestionBank) (QuestionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range bank.All() {
		if s.askedQuestions[q.ID] {
			continue
		}
		s.askedQuestions[q.ID] = true
		s.questionOrder = append(s.questionOrder, q.ID)
		s.lastActivity = time.Now().UTC()
		return q, true
	}
	return QuestionRecord{}, false
}

// Submit records an answer payload. The raw payload is always appended for
// the audit trail, even when the answer is rejected for targeting an
// undispensed question; AEON answers are additionally keyed by question id
// and may overwrite an earlier submission for the same question.
func (s *Session) Submit(payload AnswerPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return errors.SessionCompleted(s.Token)
	}
	if payload.Kind == AnswerKindAeon && payload.Aeon == nil {
		return errors.InvalidInput("aeon answer payload is missing")
	}

	if payload.SubmittedAt.IsZero() {
		payload.SubmittedAt = time.Now().UTC()
	}
	s.rawAnswers = append(s.rawAnswers, payload)
	s.lastActivity = time.Now().UTC()

	if payload.Kind == AnswerKindAeon {
		if !s.askedQuestions[payload.Aeon.QuestionID] {
			return errors.QuestionNotAsked(payload.Aeon.QuestionID)
		}
		s.answersByQuestion[payload.Aeon.QuestionID] = payload.Aeon.Text
	}
	return nil
}

// Complete marks the session completed. The transition is monotonic: once
// completed, no further answer submissions are accepted.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed = true
	s.lastActivity = time.Now().UTC()
}

// IsCompleted reports whether the session has been completed
func (s *Session) IsCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

// LastActivity returns the timestamp of the last mutating operation
func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// AskedCount returns how many questions have been dispensed
func (s *Session) AskedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.askedQuestions)
}

// AnsweredCount returns how many AEON questions have recorded answers
func (s *Session) AnsweredCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.answersByQuestion)
}

// RawAnswerCount returns the length of the raw audit trail
func (s *Session) RawAnswerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rawAnswers)
}

// AnswersSnapshot returns a copy of the question id → answer text mapping
func (s *Session) AnswersSnapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]string, len(s.answersByQuestion))
	for id, text := range s.answersByQuestion {
		snapshot[id] = text
	}
	return snapshot
}

// QuestionOrderSnapshot returns a copy of the dispensing order
func (s *Session) QuestionOrderSnapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := make([]string, len(s.questionOrder))
	copy(order, s.questionOrder)
	return order
}

// RawAnswersSnapshot returns a copy of the append-only raw answer trail
func (s *Session) RawAnswersSnapshot() []AnswerPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw := make([]AnswerPayload, len(s.rawAnswers))
	copy(raw, s.rawAnswers)
	return raw
}
