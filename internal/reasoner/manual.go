package reasoner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Cyclone1070/reagent/internal/conversation"
)

// LineSource supplies raw input lines. The console implements it over
// stdin; tests script it.
type LineSource interface {
	ReadLine() (string, error)
}

// endMarker terminates a pasted manual response. The line must match
// exactly, with no surrounding whitespace.
const endMarker = "END"

// Manual relays each request to a human instead of an API: it prints
// the serialized payload, copies it to the clipboard when one is
// available, then collects the pasted model response until an END
// line. Useful for driving the loop through a chat UI that has no API
// access.
type Manual struct {
	model string
	out   io.Writer
	in    LineSource

	// copyFn is swapped in tests; clipboard access is best effort and
	// its failure is never surfaced as an error.
	copyFn func(string) error
}

// NewManual builds a human relay writing prompts to out and reading
// responses from in.
func NewManual(model string, out io.Writer, in LineSource) *Manual {
	return &Manual{model: model, out: out, in: in, copyFn: clipboard.WriteAll}
}

// NextResponse shows the request and blocks until the human pastes a
// non-empty response terminated by END.
func (m *Manual) NextResponse(ctx context.Context, msgs []conversation.Message) (string, error) {
	payload, err := MarshalRequest(m.model, msgs)
	if err != nil {
		return "", err
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(m.out, "\nSend this request to the model:\n%s\n%s\n%s\n", rule, payload, rule)
	if m.copyFn(payload) == nil {
		fmt.Fprintln(m.out, "The request has been copied to your clipboard.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(m.out, "\nPaste the model response, then finish with a line containing only %s:\n", endMarker)

		var lines []string
		for {
			line, err := m.in.ReadLine()
			if err != nil {
				return "", fmt.Errorf("read manual response: %w", err)
			}
			if line == endMarker {
				break
			}
			lines = append(lines, line)
		}

		response := strings.Join(lines, "\n")
		if strings.TrimSpace(response) != "" {
			return response, nil
		}
		fmt.Fprintln(m.out, "Empty response, please paste the model output before the END line.")
	}
}
