package quizgen

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	scriptBlock = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	styleBlock  = regexp.MustCompile(`(?i)<style[^>]*>[\s\S]*?</style>`)
	markupTag   = regexp.MustCompile(`<[^>]+>`)

	// ascii whitespace plus unicode separators and BOM
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// strips markup, collapses whitespace and caps the result at MaxTextLength characters
func Sanitize(text string) string {
	text = scriptBlock.ReplaceAllString(text, "")
	text = styleBlock.ReplaceAllString(text, "")
	text = markupTag.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.Trim(text, " ")

	return truncate(text, MaxTextLength)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}

// validates raw caller input in field order: text, difficulty, type, count
func ParseRequest(raw RawRequest) (*Params, error) {
	text, ok := raw.Text.(string)
	if !ok || text == "" {
		return nil, &ValidationError{Field: "text", Message: "Text content is missing."}
	}

	text = Sanitize(text)
	if len([]rune(text)) < MinTextLength {
		return nil, &ValidationError{Field: "text", Message: "Text is too short to generate a quiz."}
	}

	difficulty, ok := parseDifficulty(raw.Difficulty)
	if !ok {
		return nil, &ValidationError{Field: "difficulty", Message: "Invalid difficulty level."}
	}

	questionType, ok := parseQuestionType(raw.Type)
	if !ok {
		return nil, &ValidationError{Field: "type", Message: "Invalid question type."}
	}

	count, ok := parseCount(raw.Count)
	if !ok || count < MinQuestionCount || count > MaxQuestionCount {
		return nil, &ValidationError{
			Field:   "count",
			Message: "Count must be between 1 and " + strconv.Itoa(MaxQuestionCount),
		}
	}

	return &Params{
		Text:       text,
		Difficulty: difficulty,
		Type:       questionType,
		Count:      count,
	}, nil
}

func parseDifficulty(v any) (Difficulty, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}

	switch d := Difficulty(strings.ToLower(s)); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyHOTS:
		return d, true
	default:
		return "", false
	}
}

func parseQuestionType(v any) (QuestionType, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}

	switch t := QuestionType(strings.ToLower(s)); t {
	case TypeMCQ, TypeShort, TypeLong, TypeMixed:
		return t, true
	default:
		return "", false
	}
}

// coerces a JSON number or numeric string to an integer, truncating any
// fraction and ignoring trailing non-digits ("12 questions" is 12)
func parseCount(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(math.Trunc(n)), true
	case int:
		return n, true
	case string:
		return leadingInt(n)
	default:
		return 0, false
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// too many digits for an int, certainly out of range
		return math.MaxInt32, true
	}

	return n, true
}
