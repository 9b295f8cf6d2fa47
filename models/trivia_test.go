package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriviaTestForLangDefaultsToRussian(t *testing.T) {
	assert.Equal(t, "Тест по программированию", TriviaTestForLang("").Title)
	assert.Equal(t, "Тест по программированию", TriviaTestForLang("ru").Title)
	assert.Equal(t, "Programming Test", TriviaTestForLang("en").Title)
}

func TestTriviaGrade(t *testing.T) {
	test := TriviaTestForLang("en")

	assert.Equal(t, 100, test.Grade([]TriviaAnswer{
		{QuestionID: 1, AnswerID: 1},
		{QuestionID: 2, AnswerID: 1},
	}))
	assert.Equal(t, 50, test.Grade([]TriviaAnswer{
		{QuestionID: 1, AnswerID: 1},
		{QuestionID: 2, AnswerID: 3},
	}))
	assert.Equal(t, 0, test.Grade(nil))
}
