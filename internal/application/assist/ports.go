package assist

import "context"

// Message is a single turn of a completion conversation.
type Message struct {
	Role    string `json:"role"` // system | user | assistant
	Content string `json:"content"`
}

/*
CompletionClient
----------------
Upstream text-completion API. IsConfigured reports whether a usable
credential is present; Complete returns the assistant's reply text.
*/
type CompletionClient interface {
	IsConfigured() bool
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
}
