package reasoner

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Cyclone1070/reagent/internal/conversation"
	"github.com/Cyclone1070/reagent/internal/runlog"
)

// OpenRouterBaseURL is the default endpoint for API runs.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

// ChatClient is the slice of the OpenAI SDK the reasoner needs. Tests
// inject a scripted implementation.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewChatClient builds an SDK client for any OpenAI-compatible
// endpoint. An empty baseURL targets OpenRouter.
func NewChatClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}
	cfg.BaseURL = baseURL
	return openai.NewClientWithConfig(cfg)
}

// OpenRouter reasons through an OpenAI-compatible chat completion API.
// Every request payload and raw response is appended to the run log so
// a session can be replayed or debugged offline.
type OpenRouter struct {
	client ChatClient
	model  string
	log    runlog.Sink
}

// NewOpenRouter wires a chat client to the reasoner contract. A nil
// log discards the request trace.
func NewOpenRouter(client ChatClient, model string, log runlog.Sink) *OpenRouter {
	if log == nil {
		log = runlog.Nop{}
	}
	return &OpenRouter{client: client, model: model, log: log}
}

// NextResponse sends the transcript and returns the first choice's
// content verbatim.
func (o *OpenRouter) NextResponse(ctx context.Context, msgs []conversation.Message) (string, error) {
	payload, err := MarshalRequest(o.model, msgs)
	if err != nil {
		return "", err
	}
	if err := o.log.Append("Request payload:\n" + payload); err != nil {
		return "", fmt.Errorf("log request: %w", err)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: toChatMessages(msgs),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	if err := o.log.Append("Model response:\n" + content); err != nil {
		return "", fmt.Errorf("log response: %w", err)
	}
	return content, nil
}

func toChatMessages(msgs []conversation.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}
