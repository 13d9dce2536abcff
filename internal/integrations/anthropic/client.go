package anthropic

import (
	"context"
	"fmt"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const provider = "anthropic"

// StreamRequest is one chat completion. Messages must already be trimmed
// to the context window the caller wants to send.
type StreamRequest struct {
	Model     string
	MaxTokens int
	System    string
	Messages  []domain.ChatMessage
}

type Client struct {
	api     sdk.Client
	breaker *integrations.Breaker[struct{}]
}

func NewClient(apiKey string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		api:     sdk.NewClient(opts...),
		breaker: integrations.NewBreaker[struct{}]("anthropic-messages", nil),
	}
}

// Stream sends the conversation and calls onText for every text delta in
// arrival order. An error from onText stops the stream and is returned.
func (c *Client) Stream(ctx context.Context, req StreamRequest, onText func(string) error) error {
	logger.ExternalServiceCall(provider, "Stream", "model", req.Model, "messages", len(req.Messages))

	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.stream(ctx, req, onText)
	})
	metrics.RecordUpstream(provider, "stream", err)
	logger.ExternalServiceResult(provider, "Stream", err)
	return err
}

func (c *Client) stream(ctx context.Context, req StreamRequest, onText func(string) error) error {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  toParams(req.Messages),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	stream := c.api.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		event := stream.Current()
		delta, ok := event.AsAny().(sdk.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(sdk.TextDelta)
		if !ok {
			continue
		}
		if err := onText(text.Text); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("message stream failed: %w", err)
	}
	return nil
}

func toParams(messages []domain.ChatMessage) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := sdk.NewTextBlock(m.Content)
		if m.Role == domain.ChatRoleAssistant {
			out = append(out, sdk.NewAssistantMessage(block))
		} else {
			out = append(out, sdk.NewUserMessage(block))
		}
	}
	return out
}
