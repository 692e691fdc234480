package quizzes

import (
	"testing"

	"codeberg.org/wexam/server/internal/quizgen"
	"github.com/stretchr/testify/assert"
)

func mcq() quizgen.Question {
	return quizgen.Question{
		Question: "What is H2O?",
		Type:     quizgen.TypeMCQ,
		Options:  []string{"Water", "Salt", "Air", "Sand"},
		Answer:   "Water",
	}
}

func TestValidateCreate(t *testing.T) {
	valid := CreateQuizRequest{Difficulty: "Medium", Type: "mcq", Questions: []quizgen.Question{mcq()}}
	assert.NoError(t, ValidateCreate(valid))

	badOptions := valid
	q := mcq()
	q.Options = q.Options[:2]
	badOptions.Questions = []quizgen.Question{q}
	assert.Error(t, ValidateCreate(badOptions))

	badDifficulty := valid
	badDifficulty.Difficulty = "legendary"
	assert.Error(t, ValidateCreate(badDifficulty))

	badType := valid
	badType.Type = "essay"
	assert.Error(t, ValidateCreate(badType))

	empty := valid
	empty.Questions = nil
	assert.Error(t, ValidateCreate(empty))
}
