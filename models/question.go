package models

import (
	"encoding/json"
	"os"

	"aeon/internal/errors"
)

// Question categories
const (
	CategoryTechnical = "technical"
	CategorySoft      = "soft"
)

// QuestionRecord is a single interview question in the AEON pool.
// Keywords drive relevance scoring of free-text answers.
type QuestionRecord struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// QuestionBank is an immutable ordered pool of interview questions.
// Order is significant: it defines the default dispensing order.
type QuestionBank struct {
	questions []QuestionRecord
	byID      map[string]QuestionRecord
}

// NewQuestionBank builds a bank from an ordered question list
func NewQuestionBank(questions []QuestionRecord) *QuestionBank {
	byID := make(map[string]QuestionRecord, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &QuestionBank{
		questions: questions,
		byID:      byID,
	}
}

// LoadQuestionBank reads a question pool from a JSON file
func LoadQuestionBank(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read questions file %s", path)
	}

	var questions []QuestionRecord
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, errors.Wrapf(err, "failed to parse questions file %s", path)
	}
	if len(questions) == 0 {
		return nil, errors.ConfigInvalid("questions file contains no questions")
	}

	return NewQuestionBank(questions), nil
}

// All returns the questions in bank order. Callers must not mutate the slice.
func (b *QuestionBank) All() []QuestionRecord {
	return b.questions
}

// ByID looks up a question by its identifier
func (b *QuestionBank) ByID(id string) (QuestionRecord, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Size returns the number of questions in the bank
func (b *QuestionBank) Size() int {
	return len(b.questions)
}

// DefaultQuestionBank returns the built-in AEON interview pool
func DefaultQuestionBank() *QuestionBank {
	return NewQuestionBank(defaultQuestions)
}

var defaultQuestions = []QuestionRecord{
	{
		ID:       "q_1",
		Text:     "Tell us about yourself and your professional experience. Which skills and achievements do you consider most important?",
		Category: CategoryTechnical,
		Keywords: []string{"experience", "skills", "project", "achievement", "team"},
	},
	{
		ID:       "q_2",
		Text:     "Describe your ideal working day. What would you do and how would you feel?",
		Category: CategorySoft,
		Keywords: []string{"focus", "balance", "plan", "energy"},
	},
	{
		ID:       "q_3",
		Text:     "Tell us about a time you had to solve a difficult problem. How did you approach the solution?",
		Category: CategoryTechnical,
		Keywords: []string{"problem", "solution", "analysis", "debug", "result"},
	},
	{
		ID:       "q_4",
		Text:     "How do you handle stress and pressure at work? Give a concrete example.",
		Category: CategorySoft,
		Keywords: []string{"stress", "deadline", "pressure", "calm", "prioritize"},
	},
	{
		ID:       "q_5",
		Text:     "Tell us about your experience working in a team. What role do you usually play?",
		Category: CategorySoft,
		Keywords: []string{"team", "role", "communication", "conflict", "collaborate"},
	},
	{
		ID:       "q_6",
		Text:     "Which technologies, methods or skills have you learned over the last year? What do you plan to learn next?",
		Category: CategoryTechnical,
		Keywords: []string{"learning", "technology", "course", "practice", "improve"},
	},
	{
		ID:       "q_7",
		Text:     "Describe a situation where you had to adapt to major changes. How did you do it?",
		Category: CategorySoft,
		Keywords: []string{"change", "adapt", "flexible", "transition"},
	},
	{
		ID:       "q_8",
		Text:     "Tell us about your career goals. Where do you see yourself in 2-3 years?",
		Category: CategorySoft,
		Keywords: []string{"goal", "career", "growth", "plan", "develop"},
	},
	{
		ID:       "q_9",
		Text:     "What motivates you most at work? What gives you energy for professional growth?",
		Category: CategorySoft,
		Keywords: []string{"motivation", "energy", "passion", "impact"},
	},
	{
		ID:       "q_10",
		Text:     "Why are you interested in working at our company? What contribution do you want to make?",
		Category: CategorySoft,
		Keywords: []string{"company", "contribution", "value", "mission", "culture"},
	},
}
