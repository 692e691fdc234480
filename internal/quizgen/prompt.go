package quizgen

import (
	"fmt"
	"strings"
)

// fixes the assistant's role for every attempt
const SystemPrompt = "You are an advanced exam paper generator. You generate high-quality structured exam questions " +
	"strictly from provided study material. You must respond with ONLY valid JSON, no other text."

const promptRules = `STRICT RULES:
1. Use ONLY the provided study text below.
2. Do NOT use external knowledge.
3. Do NOT invent facts.
4. If the answer to a question is not found in the text, skip it.
5. Match difficulty definitions strictly.

DIFFICULTY DEFINITIONS:
Easy: Direct recall, definitions, simple MCQs
Medium: Concept understanding, reason-based, 2-3 mark style
Hard: Analytical, compare and contrast, multi-step reasoning
HOTS: Case-based, real-life application, evaluation and analysis

For MCQ: each question must have exactly 4 options and one correct answer.
For short/long: provide a model answer in the "answer" field.
Note: For short and long type questions, the "options" field should be an empty array [].

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "question": "",
      "type": "mcq|short|long",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "answer": "The correct answer",
      "explanation": "Brief explanation of the answer"
    }
  ]
}`

// renders the user prompt; the output depends only on p
func BuildPrompt(p Params) string {
	var b strings.Builder

	b.WriteString(typeInstruction(p.Type, p.Count))
	b.WriteString("\nDifficulty: ")
	b.WriteString(string(p.Difficulty))
	b.WriteString("\n\n")
	b.WriteString(promptRules)
	b.WriteString("\n\nSTUDY TEXT:\n\"\"\"\n")
	b.WriteString(p.Text)
	b.WriteString("\n\"\"\"")

	return b.String()
}

func typeInstruction(t QuestionType, count int) string {
	switch t {
	case TypeShort:
		return fmt.Sprintf("Generate %d short-answer questions. Each question should require a 1-3 sentence answer.", count)
	case TypeLong:
		return fmt.Sprintf("Generate %d long-answer questions. Each question should require a detailed paragraph answer.", count)
	case TypeMixed:
		return fmt.Sprintf("Generate %d questions with a mix of MCQ, short-answer, and long-answer types. "+
			"For MCQ questions, include exactly 4 options.", count)
	default:
		return fmt.Sprintf("Generate %d multiple-choice questions (MCQ). Each question MUST have exactly 4 options.", count)
	}
}
