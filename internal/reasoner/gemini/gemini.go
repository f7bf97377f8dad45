// Package gemini adapts Google's genai SDK to the loop's reasoner
// contract. The transcript's system message becomes the system
// instruction; user and assistant turns map to the SDK's user and
// model roles.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Cyclone1070/reagent/internal/conversation"
	"github.com/Cyclone1070/reagent/internal/reasoner"
	"github.com/Cyclone1070/reagent/internal/runlog"
)

// Client is the slice of the genai SDK the reasoner needs. Tests
// inject a scripted implementation.
type Client interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// SDKClient wraps the official client to satisfy Client.
type SDKClient struct {
	client *genai.Client
}

// NewSDKClient wraps a configured genai client.
func NewSDKClient(client *genai.Client) *SDKClient {
	return &SDKClient{client: client}
}

func (c *SDKClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}

// Reasoner drives Gemini models through the shared reasoner contract.
type Reasoner struct {
	client Client
	model  string
	log    runlog.Sink
}

// New wires a Gemini client to the loop. A nil log discards the
// request trace.
func New(client Client, model string, log runlog.Sink) *Reasoner {
	if log == nil {
		log = runlog.Nop{}
	}
	return &Reasoner{client: client, model: model, log: log}
}

// NextResponse sends the transcript and returns the first candidate's
// text.
func (r *Reasoner) NextResponse(ctx context.Context, msgs []conversation.Message) (string, error) {
	payload, err := reasoner.MarshalRequest(r.model, msgs)
	if err != nil {
		return "", err
	}
	if err := r.log.Append("Request payload:\n" + payload); err != nil {
		return "", fmt.Errorf("log request: %w", err)
	}

	contents, config := toGenaiRequest(msgs)
	resp, err := r.client.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	if err := r.log.Append("Model response:\n" + text); err != nil {
		return "", fmt.Errorf("log response: %w", err)
	}
	return text, nil
}

// toGenaiRequest splits the transcript into SDK contents plus a config
// carrying the system instruction. Empty messages are skipped.
func toGenaiRequest(msgs []conversation.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	var contents []*genai.Content
	var config *genai.GenerateContentConfig

	for _, m := range msgs {
		if m.Content == "" {
			continue
		}
		if m.Role == conversation.RoleSystem {
			config = &genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{
					Parts: []*genai.Part{genai.NewPartFromText(m.Content)},
				},
			}
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  toGenaiRole(m.Role),
			Parts: []*genai.Part{genai.NewPartFromText(m.Content)},
		})
	}
	return contents, config
}

func toGenaiRole(role conversation.Role) string {
	if role == conversation.RoleAssistant {
		return "model"
	}
	return "user"
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("response contains no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("response candidate contains no content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
