package models

// TriviaChoice is one selectable answer for a trivia question
type TriviaChoice struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// TriviaQuestion is a multiple-choice question. The first listed choice is
// the correct one.
type TriviaQuestion struct {
	ID      int            `json:"id"`
	Text    string         `json:"text"`
	Answers []TriviaChoice `json:"answers"`
}

// TriviaTest is a static multiple-choice quiz kept for backward
// compatibility with older clients
type TriviaTest struct {
	ID        int              `json:"id"`
	Title     string           `json:"title"`
	Questions []TriviaQuestion `json:"questions"`
}

// Grade scores submitted choices against the test. A choice is correct when
// it matches the first listed answer of its question.
func (t *TriviaTest) Grade(answers []TriviaAnswer) int {
	correct := 0
	for _, submitted := range answers {
		for _, q := range t.Questions {
			if q.ID == submitted.QuestionID && len(q.Answers) > 0 && submitted.AnswerID == q.Answers[0].ID {
				correct++
			}
		}
	}
	if len(t.Questions) == 0 {
		return 0
	}
	return 100 * correct / len(t.Questions)
}

// TriviaTestForLang returns the language variant of the built-in quiz.
// Russian is the default; older clients only ever send lang=en explicitly.
func TriviaTestForLang(lang string) *TriviaTest {
	if lang == "en" {
		return &triviaTestEN
	}
	return &triviaTestRU
}

var triviaTestEN = TriviaTest{
	ID:    1,
	Title: "Programming Test",
	Questions: []TriviaQuestion{
		{
			ID:   1,
			Text: "Which programming language is used for FastAPI?",
			Answers: []TriviaChoice{
				{ID: 1, Text: "Python"},
				{ID: 2, Text: "JavaScript"},
				{ID: 3, Text: "C++"},
			},
		},
		{
			ID:   2,
			Text: "What is Pydantic?",
			Answers: []TriviaChoice{
				{ID: 1, Text: "A data validation library"},
				{ID: 2, Text: "IDE"},
				{ID: 3, Text: "OS"},
			},
		},
	},
}

var triviaTestRU = TriviaTest{
	ID:    1,
	Title: "Тест по программированию",
	Questions: []TriviaQuestion{
		{
			ID:   1,
			Text: "Какой язык программирования используется для FastAPI?",
			Answers: []TriviaChoice{
				{ID: 1, Text: "Python"},
				{ID: 2, Text: "JavaScript"},
				{ID: 3, Text: "C++"},
			},
		},
		{
			ID:   2,
			Text: "Что такое Pydantic?",
			Answers: []TriviaChoice{
				{ID: 1, Text: "Библиотека для валидации данных"},
				{ID: 2, Text: "IDE"},
				{ID: 3, Text: "ОС"},
			},
		},
	},
}
