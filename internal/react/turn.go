// Package react implements the text protocol spoken between the agent
// loop and the reasoning model: the tagged sections of a model response
// and the tool-call expression grammar used inside <action> tags.
package react

import (
	"errors"
	"regexp"
	"strings"
)

// -- Sentinels --

var (
	// ErrNoDirective means a model response carried neither an <action>
	// nor a <final_answer> tag, leaving the loop nothing to act on.
	ErrNoDirective = errors.New("response contains no <action> or <final_answer> tag")

	// ErrUnterminatedFinal means a <final_answer> marker was present
	// without a matching closing tag.
	ErrUnterminatedFinal = errors.New("<final_answer> tag is not terminated")
)

var (
	thoughtRe = regexp.MustCompile(`(?s)<thought>(.*?)</thought>`)
	actionRe  = regexp.MustCompile(`(?s)<action>(.*?)</action>`)
	finalRe   = regexp.MustCompile(`(?s)<final_answer>(.*?)</final_answer>`)
)

// Turn is one parsed model response: an optional thought plus either a
// tool invocation or a final answer.
type Turn struct {
	Thought     string
	IsFinal     bool
	FinalAnswer string
	Action      string
}

// ParseTurn extracts the directive from a raw model response. Only the
// first span of each tag counts. A <final_answer> tag wins over an
// <action> tag when both are present; an <action> on a final turn is
// never dispatched.
func ParseTurn(raw string) (*Turn, error) {
	t := &Turn{}
	if m := thoughtRe.FindStringSubmatch(raw); m != nil {
		t.Thought = strings.TrimSpace(m[1])
	}
	if strings.Contains(raw, "<final_answer>") {
		m := finalRe.FindStringSubmatch(raw)
		if m == nil {
			return nil, ErrUnterminatedFinal
		}
		t.IsFinal = true
		t.FinalAnswer = strings.TrimSpace(m[1])
		return t, nil
	}
	if m := actionRe.FindStringSubmatch(raw); m != nil {
		t.Action = strings.TrimSpace(m[1])
		return t, nil
	}
	return nil, ErrNoDirective
}

// WrapQuestion wraps the initial user task for the first user message.
func WrapQuestion(task string) string {
	return "<question>" + task + "</question>"
}

// WrapObservation wraps a tool observation for the next user message.
func WrapObservation(observation string) string {
	return "<observation>" + observation + "</observation>"
}
