package ai

import "strings"

const promptPreamble = "You are a helpful assistant for a student dormitory. Answer the student's question using the dorm rules provided. " +
	"If the answer is not in the rules, say you don't know.\n\n"

// BuildPrompt combines the rules document and a student's question into one
// user prompt. Both are inserted verbatim.
func BuildPrompt(question, rules string) string {
	var builder strings.Builder
	builder.Grow(len(promptPreamble) + len(rules) + len(question) + 64)

	builder.WriteString(promptPreamble)
	builder.WriteString("# Dorm Rules (full):\n")
	builder.WriteString(rules)
	builder.WriteString("\n\n# Student's Question:\n")
	builder.WriteString(question)
	builder.WriteString("\n\n# Your Answer:")
	return builder.String()
}
