package rules

import (
	"fmt"
	"os"
)

// Document is the dormitory rulebook, read once at start-up and never mutated.
type Document struct {
	text            string
	title           string
	initialQuestion string
}

// Option customises the UI metadata attached to a Document.
type Option func(*Document)

// WithTitle sets the chat title shown by the web UI.
func WithTitle(title string) Option {
	return func(d *Document) { d.title = title }
}

// WithInitialQuestion sets the example question shown by the web UI.
func WithInitialQuestion(question string) Option {
	return func(d *Document) { d.initialQuestion = question }
}

// New wraps already loaded rules text.
func New(text string, opts ...Option) Document {
	doc := Document{text: text}
	for _, opt := range opts {
		opt(&doc)
	}
	return doc
}

// Load reads the rules file at path.
func Load(path string, opts ...Option) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read rules document %s: %w", path, err)
	}
	return New(string(data), opts...), nil
}

// Text returns the full rules text verbatim.
func (d Document) Text() string { return d.text }

// Title returns the chat title shown by the web UI.
func (d Document) Title() string { return d.title }

// InitialQuestion returns the example question shown by the web UI.
func (d Document) InitialQuestion() string { return d.initialQuestion }
