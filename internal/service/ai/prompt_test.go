package ai

import (
	"strings"
	"testing"
)

func TestBuildPromptContainsRulesAndQuestion(t *testing.T) {
	rules := "第1条 ゴミは曜日ごとに分別して出すこと。\n第2条 {braces} と 100% はそのまま。"
	question := "ゴミ出しのルールは？"

	prompt := BuildPrompt(question, rules)

	if !strings.Contains(prompt, rules) {
		t.Fatal("prompt must contain the rules verbatim")
	}
	if !strings.Contains(prompt, question) {
		t.Fatal("prompt must contain the question verbatim")
	}
	if !strings.HasSuffix(prompt, "# Your Answer:") {
		t.Fatalf("prompt must end with the answer cue, got %q", prompt[len(prompt)-20:])
	}
	if strings.Index(prompt, rules) > strings.Index(prompt, question) {
		t.Fatal("rules must precede the question")
	}
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	if BuildPrompt("q", "r") != BuildPrompt("q", "r") {
		t.Fatal("prompt must be deterministic")
	}
}

func TestBuildPromptEmptyQuestion(t *testing.T) {
	prompt := BuildPrompt("", "rules")
	if !strings.Contains(prompt, "# Student's Question:\n\n\n# Your Answer:") {
		t.Fatalf("unexpected prompt for empty question: %q", prompt)
	}
}
