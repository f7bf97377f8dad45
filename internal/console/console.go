// Package console is the line-oriented terminal front end of a run:
// styled rendering of loop events plus the blocking reads the
// confirmation gate, the manual relay and the task prompt share.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Console owns the interactive side of the terminal. All reads go
// through one buffered reader, so the task prompt, the confirmation
// gate and the manual relay never steal each other's input.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New wraps the given streams, typically stdin and stdout.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ReadLine blocks for one input line and returns it without the
// trailing newline. A final unterminated line is returned intact; the
// EOF surfaces on the next call.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt writes message, blocks for one line and returns it trimmed of
// surrounding whitespace. It satisfies the confirmation gate's
// prompter contract.
func (c *Console) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(c.out, message); err != nil {
		return "", err
	}
	line, err := c.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
