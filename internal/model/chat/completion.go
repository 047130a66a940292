package chat

// CompletionRequest is one question sent to the completion provider. It is
// built fresh for every inbound question and carries no identity.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// Answer is the JSON shape shared by the web chat endpoints.
type Answer struct {
	Response string `json:"response"`
}

// Question is the inbound web chat payload.
type Question struct {
	Message string `json:"message"`
}
