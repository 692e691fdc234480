package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// JSON schema for a generated quiz. Options may be absent, empty, or exactly
// four strings; an item typed "mcq" must carry the four options.
const quizSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "answer"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "answer": {"type": "string", "minLength": 1},
          "type": {"type": "string"},
          "explanation": {"type": ["string", "null"]},
          "options": {
            "type": ["array", "null"],
            "items": {"type": "string"},
            "anyOf": [
              {"type": "null"},
              {"type": "array", "maxItems": 0},
              {"type": "array", "minItems": 4, "maxItems": 4}
            ]
          }
        },
        "if": {"properties": {"type": {"const": "mcq"}}, "required": ["type"]},
        "then": {"required": ["options"], "properties": {"options": {"type": "array", "minItems": 4, "maxItems": 4}}}
      }
    }
  }
}`

var (
	compiledSchema     *gojsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func loadSchema() (*gojsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiledSchema, compiledSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizSchema))
	})

	return compiledSchema, compiledSchemaErr
}

// extracts and validates a quiz from raw model output
func ParseQuiz(text string) (*Quiz, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, &FormatError{Reason: "no JSON found in model output"}
	}

	return ValidateQuiz(raw)
}

// checks a JSON document against the quiz schema and decodes it
func ValidateQuiz(raw []byte) (*Quiz, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile quiz schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &FormatError{Reason: "unreadable JSON: " + err.Error()}
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}

		return nil, &FormatError{Reason: strings.Join(problems, "; ")}
	}

	var quiz Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, &FormatError{Reason: "failed to decode quiz: " + err.Error()}
	}

	if err := CheckQuestions(quiz.Questions); err != nil {
		return nil, err
	}
	NormalizeOptions(quiz.Questions)

	return &quiz, nil
}

// free-text items always serialize an empty options array, never null
func NormalizeOptions(questions []Question) {
	for i := range questions {
		if questions[i].Options == nil {
			questions[i].Options = []string{}
		}
	}
}

// enforces the invariants the schema cannot express: blank text and a
// case-insensitive mcq type still count as violations
func CheckQuestions(questions []Question) error {
	if len(questions) == 0 {
		return &FormatError{Reason: "questions must not be empty"}
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return &FormatError{Reason: fmt.Sprintf("question %d has no text", i+1)}
		}

		if strings.TrimSpace(q.Answer) == "" {
			return &FormatError{Reason: fmt.Sprintf("question %d has no answer", i+1)}
		}

		if q.IsMCQ() && len(q.Options) != 4 {
			return &FormatError{Reason: fmt.Sprintf("question %d is multiple choice with %d options", i+1, len(q.Options))}
		}
	}

	return nil
}
