package orchestrator

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/reagent/internal/react"
)

// Event is one observable moment of a run. Sinks receive events in loop
// order, synchronously, so rendering and logging interleave correctly
// with the confirmation prompts of the gate.
type Event interface {
	isEvent()
}

// EventSink consumes loop events. A failing sink aborts the run; the
// audit trail is not best-effort.
type EventSink interface {
	Publish(e Event) error
}

// QuestionEvent opens a run with the user's task.
type QuestionEvent struct {
	Task string
}

// ThinkingEvent precedes each reasoner call.
type ThinkingEvent struct {
	Step int
}

// ThoughtEvent carries the model's extracted reasoning span.
type ThoughtEvent struct {
	Text string
}

// ActionEvent announces a parsed tool call before the gate sees it.
type ActionEvent struct {
	Tool    string
	Args    []any
	Display string
}

// ObservationEvent carries a tool observation fed back to the model.
type ObservationEvent struct {
	Text string
}

// FinalAnswerEvent closes a successful run.
type FinalAnswerEvent struct {
	Text string
}

// CancelledEvent closes a run the user refused to continue.
type CancelledEvent struct {
	Tool string
}

// StepLimitEvent closes a run that hit the step ceiling.
type StepLimitEvent struct {
	Max int
}

func (QuestionEvent) isEvent()    {}
func (ThinkingEvent) isEvent()    {}
func (ThoughtEvent) isEvent()     {}
func (ActionEvent) isEvent()      {}
func (ObservationEvent) isEvent() {}
func (FinalAnswerEvent) isEvent() {}
func (CancelledEvent) isEvent()   {}
func (StepLimitEvent) isEvent()   {}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Publish(Event) error { return nil }

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

func (m MultiSink) Publish(e Event) error {
	for _, s := range m {
		if err := s.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

// formatCall renders an action for humans close to how the model wrote
// it: strings bare, null as none.
func formatCall(call *react.ActionCall) string {
	parts := make([]string, len(call.Args))
	for i, arg := range call.Args {
		parts[i] = formatArg(arg)
	}
	return fmt.Sprintf("%s(%s)", call.Name, strings.Join(parts, ", "))
}

func formatArg(v any) string {
	switch t := v.(type) {
	case nil:
		return "none"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
