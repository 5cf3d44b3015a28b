package assist

import (
	"context"
	"fmt"

	"github.com/baechuer/eventflow/internal/logger"
)

// Degraded responses. AI features must never break the primary
// event-management flow: upstream failures are converted to these
// instead of propagating as errors.
const (
	mockDescription = "[MOCK AI] generated description for %s at %s. (Set valid OPENAI_API_KEY to see real magic)"
	mockChatReply   = "I am a mock AI assistant. I can help you navigate the app! (Set valid OPENAI_API_KEY for real answers)"

	degradedDescription = "Failed to generate description. Please try again."
	degradedChatReply   = "I'm having trouble reaching the assistant right now. Please try again later."
)

const (
	descriptionSystemPrompt = "You are a professional event planner. Write a compelling, high-quality event description under 120 words."
	chatSystemPrompt        = "You are a helpful and professional AI assistant for the EventFlow application. Keep responses concise and relevant to event management."
)

type Service struct {
	client CompletionClient
}

func NewService(client CompletionClient) *Service {
	return &Service{client: client}
}

// GenerateDescription produces an event description. Without a configured
// upstream credential a clearly-labeled mock is returned so the rest of
// the system stays testable.
func (s *Service) GenerateDescription(ctx context.Context, title, location, keywords string) string {
	if !s.client.IsConfigured() {
		return fmt.Sprintf(mockDescription, title, location)
	}

	messages := []Message{
		{Role: "system", Content: descriptionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Write an event description for %q in %q. Keywords: %s. Tone: Exciting and professional.", title, location, keywords)},
	}

	out, err := s.client.Complete(ctx, messages, 200)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Msg("description generation degraded")
		return degradedDescription
	}
	return out
}

// Chat answers an assistant message given the prior conversation turns.
func (s *Service) Chat(ctx context.Context, message string, history []Message) string {
	if !s.client.IsConfigured() {
		return mockChatReply
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	out, err := s.client.Complete(ctx, messages, 300)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Msg("chat degraded")
		return degradedChatReply
	}
	return out
}
