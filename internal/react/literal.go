package react

import (
	"strconv"
)

// Map is a key-ordered mapping literal. Iteration follows insertion
// order, i.e. the order keys appear in the action text.
type Map struct {
	keys   []string
	values map[string]any
}

// Set inserts or updates a key. An updated key keeps its original
// position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// parseLiteral interprets one trimmed argument as a closed literal:
// quoted strings, numbers, booleans, null tokens, lists and maps.
// Escape sequences inside strings are preserved verbatim ("a\nb" keeps
// the two characters backslash-n; decoding is the consuming tool's
// job). Anything that is not a valid literal falls back to the raw text
// with one layer of matching outer quotes stripped. No expression is
// ever evaluated.
func parseLiteral(raw string) any {
	sc := &literalScanner{src: raw}
	v, ok := sc.scanValue()
	if ok {
		sc.skipSpace()
		if sc.pos == len(sc.src) {
			return v
		}
	}
	return stripMatchingQuotes(raw)
}

// stripMatchingQuotes removes one layer of matching single or double
// quotes, when present on both ends.
func stripMatchingQuotes(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if first == last && (first == '"' || first == '\'') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

type literalScanner struct {
	src string
	pos int
}

func (s *literalScanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *literalScanner) scanValue() (any, bool) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return nil, false
	}
	switch c := s.src[s.pos]; {
	case c == '"' || c == '\'':
		return s.scanString()
	case c == '[':
		return s.scanList()
	case c == '{':
		return s.scanMap()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return s.scanNumber()
	default:
		return s.scanWord()
	}
}

// scanString consumes a quoted string and returns its interior
// verbatim. A backslash shields the next character from terminating the
// string but is not decoded.
func (s *literalScanner) scanString() (any, bool) {
	quote := s.src[s.pos]
	s.pos++
	start := s.pos
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
		case quote:
			content := s.src[start:s.pos]
			s.pos++
			return content, true
		default:
			s.pos++
		}
	}
	return nil, false
}

func (s *literalScanner) scanNumber() (any, bool) {
	start := s.pos
	if c := s.src[s.pos]; c == '+' || c == '-' {
		s.pos++
	}
	digits := s.scanDigits()
	isFloat := false
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		isFloat = true
		s.pos++
		digits = s.scanDigits() || digits
	}
	if !digits {
		return nil, false
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		isFloat = true
		s.pos++
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		if !s.scanDigits() {
			return nil, false
		}
	}
	text := s.src[start:s.pos]
	if !isFloat {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n, true
		}
		// Out of int64 range; keep it numeric.
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

func (s *literalScanner) scanDigits() bool {
	seen := false
	for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
		seen = true
	}
	return seen
}

// scanWord accepts the closed boolean/null token set, in both the
// Python-style and JSON-style casings models tend to emit.
func (s *literalScanner) scanWord() (any, bool) {
	start := s.pos
	for s.pos < len(s.src) && isWordByte(s.src[s.pos]) {
		s.pos++
	}
	switch s.src[start:s.pos] {
	case "true", "True":
		return true, true
	case "false", "False":
		return false, true
	case "none", "None", "null":
		return nil, true
	default:
		return nil, false
	}
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (s *literalScanner) scanList() (any, bool) {
	s.pos++ // consume '['
	list := []any{}
	s.skipSpace()
	if s.pos < len(s.src) && s.src[s.pos] == ']' {
		s.pos++
		return list, true
	}
	for {
		v, ok := s.scanValue()
		if !ok {
			return nil, false
		}
		list = append(list, v)
		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, false
		}
		switch s.src[s.pos] {
		case ',':
			s.pos++
			s.skipSpace()
			if s.pos < len(s.src) && s.src[s.pos] == ']' {
				s.pos++
				return list, true
			}
		case ']':
			s.pos++
			return list, true
		default:
			return nil, false
		}
	}
}

// scanMap accepts {"key": value, ...} with string keys only.
func (s *literalScanner) scanMap() (any, bool) {
	s.pos++ // consume '{'
	m := &Map{}
	s.skipSpace()
	if s.pos < len(s.src) && s.src[s.pos] == '}' {
		s.pos++
		return m, true
	}
	for {
		s.skipSpace()
		if s.pos >= len(s.src) || (s.src[s.pos] != '"' && s.src[s.pos] != '\'') {
			return nil, false
		}
		key, ok := s.scanString()
		if !ok {
			return nil, false
		}
		s.skipSpace()
		if s.pos >= len(s.src) || s.src[s.pos] != ':' {
			return nil, false
		}
		s.pos++
		v, ok := s.scanValue()
		if !ok {
			return nil, false
		}
		m.Set(key.(string), v)
		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, false
		}
		switch s.src[s.pos] {
		case ',':
			s.pos++
			s.skipSpace()
			if s.pos < len(s.src) && s.src[s.pos] == '}' {
				s.pos++
				return m, true
			}
		case '}':
			s.pos++
			return m, true
		default:
			return nil, false
		}
	}
}
