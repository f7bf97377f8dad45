package react

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBadActionSyntax means the action text does not match the
// tool_name(...) call grammar. The loop treats this as fatal.
var ErrBadActionSyntax = errors.New("invalid function call syntax")

var callRe = regexp.MustCompile(`(?s)\A(\w+)\((.*)\)\z`)

// ActionCall is one parsed tool invocation: the tool name and its
// positional argument values.
type ActionCall struct {
	Name string
	Args []any
}

// ParseActionCall parses a call expression of the form
// tool_name(arg1, arg2, ...). The whole string must match the grammar
// after surrounding whitespace is trimmed; the parenthesised body may
// span multiple lines. Arguments are closed literals, never expressions.
func ParseActionCall(input string) (*ActionCall, error) {
	m := callRe.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrBadActionSyntax, input)
	}
	return &ActionCall{Name: m[1], Args: splitArgs(m[2])}, nil
}

// splitArgs walks the argument body once, splitting on commas that sit
// outside string literals at parenthesis depth zero. A quote closes a
// string only when the immediately preceding character is not a
// backslash. That single-character lookback misreads an escaped
// backslash right before a closing quote ("x\\"); known limitation,
// kept as-is so the two sides of the wire agree on it.
func splitArgs(body string) []any {
	var args []any
	var cur strings.Builder
	inString := false
	var quote byte
	depth := 0

	flush := func() {
		args = append(args, parseLiteral(strings.TrimSpace(cur.String())))
		cur.Reset()
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		if inString {
			cur.WriteByte(c)
			if c == quote && (i == 0 || body[i-1] != '\\') {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
			cur.WriteByte(c)
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			depth--
			cur.WriteByte(c)
		case ',':
			if depth == 0 {
				flush()
			} else {
				cur.WriteByte(c)
			}
		default:
			cur.WriteByte(c)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		flush()
	}
	return args
}
