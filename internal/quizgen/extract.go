package quizgen

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedBlock     = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	questionsObject = regexp.MustCompile(`\{[\s\S]*"questions"[\s\S]*\}`)
)

// pulls a JSON document out of free-form model output. Tries the whole text,
// then the first fenced code block, then the widest {...} span that mentions
// "questions". The first candidate that parses wins.
func ExtractJSON(text string) ([]byte, bool) {
	if json.Valid([]byte(text)) {
		return []byte(text), true
	}

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), true
		}
	}

	if m := questionsObject.FindString(text); m != "" {
		if json.Valid([]byte(m)) {
			return []byte(m), true
		}
	}

	return nil, false
}
