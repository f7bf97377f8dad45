// Package reasoner provides the model backends the loop drives: an
// OpenAI-compatible API client, a Gemini adapter (subpackage) and a
// human relay for manual runs. All of them speak the same contract:
// full transcript in, raw response text out.
package reasoner

import (
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/reagent/internal/conversation"
)

// requestPayload is the provider-neutral request shape written to the
// run log and shown to the human in manual mode. It matches what an
// OpenAI-style chat endpoint would receive.
type requestPayload struct {
	Model    string                 `json:"model"`
	Messages []conversation.Message `json:"messages"`
}

// MarshalRequest serializes a transcript as the indented JSON request
// body for the given model.
func MarshalRequest(model string, msgs []conversation.Message) (string, error) {
	b, err := json.MarshalIndent(requestPayload{Model: model, Messages: msgs}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal request payload: %w", err)
	}
	return string(b), nil
}
