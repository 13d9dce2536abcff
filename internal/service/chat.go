package service

import (
	"context"
	"fmt"
	"strings"

	"builderclub-backend/internal/config"
	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations/anthropic"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"
)

const clubAssistantPrompt = `You are the Claude Builder Club Assistant at Penn State University. You help students, faculty, and visitors learn about the club and answer questions about AI and getting involved.

About the Claude Builder Club:
- Penn State's official Anthropic partnership club
- Mission: Empower students of all backgrounds to explore the frontier of AI with Claude in a safe, responsible, and creative environment
- We believe in hands-on learning, ethical innovation, and creating a campus culture where anyone, regardless of major, can shape the future with AI
- Open to ALL students and faculty. No prior AI or coding experience required

What we do:
- Weekly meetups and workshops on AI concepts and Claude API
- AI hackathons and project showcases
- Class integrations: helping professors add AI projects to their syllabi
- Resource hub with prompt engineering guides, workshop materials, and boilerplate code
- Student project showcases on our GitHub org
- Monthly newsletter on AI news and club highlights
- Partnership opportunities for departments and organizations

How to join:
- Create a free account on this website
- Complete your member profile to get personalized event notifications
- Show up to our next meeting. Check the Events page for details

Key pillars: Explore (AI concepts), Build (real projects), Connect (community)

Be friendly, concise, and encouraging. Keep responses under 120 words unless the topic genuinely requires more depth. If you don't know specific details like exact room numbers or times, direct the user to the Events page or suggest they sign up for reminders.`

// ChatStreamer streams a model completion as text deltas.
type ChatStreamer interface {
	Stream(ctx context.Context, req anthropic.StreamRequest, onText func(string) error) error
}

type chatService struct {
	client ChatStreamer
	cfg    config.ChatConfig
}

// NewChatService builds the assistant. client may be nil when no API key is
// configured; Stream then returns ErrNotConfigured.
func NewChatService(client ChatStreamer, cfg config.ChatConfig) ChatService {
	return &chatService{client: client, cfg: cfg}
}

// Prepare keeps the last ContextMessages turns. The model expects the
// conversation to open with a user turn, so leading assistant turns left by
// the cut are dropped.
func (s *chatService) Prepare(messages []domain.ChatMessage) ([]domain.ChatMessage, error) {
	if len(messages) == 0 {
		return nil, invalid("messages", "Invalid request: messages array required")
	}
	for i, m := range messages {
		if m.Role != domain.ChatRoleUser && m.Role != domain.ChatRoleAssistant {
			return nil, invalid("messages", fmt.Sprintf("Invalid request: unknown role %q in message %d", m.Role, i))
		}
		if strings.TrimSpace(m.Content) == "" {
			return nil, invalid("messages", fmt.Sprintf("Invalid request: message %d is empty", i))
		}
	}

	window := messages
	if n := s.cfg.ContextMessages; n > 0 && len(window) > n {
		window = window[len(window)-n:]
	}
	for len(window) > 0 && window[0].Role != domain.ChatRoleUser {
		window = window[1:]
	}
	if len(window) == 0 {
		return nil, invalid("messages", "Invalid request: conversation must include a user message")
	}
	return window, nil
}

func (s *chatService) Stream(ctx context.Context, messages []domain.ChatMessage, onText func(string) error) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	window, err := s.Prepare(messages)
	if err != nil {
		return err
	}

	err = s.client.Stream(ctx, anthropic.StreamRequest{
		Model:     s.cfg.Model,
		MaxTokens: s.cfg.MaxTokens,
		System:    clubAssistantPrompt,
		Messages:  window,
	}, onText)
	if err != nil {
		metrics.ChatStreams.WithLabelValues("error").Inc()
		logger.Error("Streaming error", "error", err)
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	metrics.ChatStreams.WithLabelValues("ok").Inc()
	return nil
}
