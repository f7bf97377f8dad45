// Package orchestrator drives the reason-act loop: it replays the
// transcript to a reasoner, parses the reply into a directive, gates
// and dispatches tool calls, and feeds observations back until the
// model answers or a limit intervenes.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Cyclone1070/reagent/internal/conversation"
	"github.com/Cyclone1070/reagent/internal/react"
)

// DefaultMaxSteps bounds runaway runs when no explicit limit is set.
const DefaultMaxSteps = 50

// CancelMessage is the answer of a run the user refused to continue.
const CancelMessage = "Operation cancelled by user"

// Reasoner produces the model's next response given the transcript so
// far. Implementations: API-backed providers and the manual relay.
type Reasoner interface {
	NextResponse(ctx context.Context, msgs []conversation.Message) (string, error)
}

// Gate approves or denies one tool invocation before dispatch.
type Gate interface {
	Approve(ctx context.Context, toolName string) (bool, error)
}

// Dispatcher executes an approved action. It never fails; failures come
// back as observation text the model can react to.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args []any) string
}

// Loop is the run engine. It holds no per-run state; Run may be called
// repeatedly.
type Loop struct {
	reasoner Reasoner
	tools    Dispatcher
	gate     Gate
	events   EventSink
	maxSteps int
}

// NewLoop wires a run engine. A nil events sink discards events; a
// non-positive maxSteps falls back to DefaultMaxSteps.
func NewLoop(reasoner Reasoner, tools Dispatcher, gate Gate, events EventSink, maxSteps int) *Loop {
	if events == nil {
		events = NopSink{}
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Loop{
		reasoner: reasoner,
		tools:    tools,
		gate:     gate,
		events:   events,
		maxSteps: maxSteps,
	}
}

// Run executes one task to completion. Reasoner failures, unparseable
// responses and malformed action calls are fatal and surface as errors;
// tool failures of any kind are recovered into observations and the run
// continues. The returned Result carries the terminal status and the
// answer text.
func (l *Loop) Run(ctx context.Context, systemPrompt, task string) (*Result, error) {
	state := RunState{
		ID:       uuid.NewString(),
		MaxSteps: l.maxSteps,
		Status:   StatusRunning,
	}
	history := conversation.NewHistory(systemPrompt, react.WrapQuestion(task))

	if err := l.events.Publish(QuestionEvent{Task: task}); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state.StepCount++
		if state.StepCount > state.MaxSteps {
			state.Status = StatusStepLimit
			if err := l.events.Publish(StepLimitEvent{Max: state.MaxSteps}); err != nil {
				return nil, err
			}
			answer := fmt.Sprintf("Reached maximum step limit (%d). Stopping to avoid infinite loop.", state.MaxSteps)
			return &Result{RunState: state, Answer: answer}, nil
		}

		if err := l.events.Publish(ThinkingEvent{Step: state.StepCount}); err != nil {
			return nil, err
		}

		raw, err := l.reasoner.NextResponse(ctx, history.Messages())
		if err != nil {
			return nil, fmt.Errorf("reasoner: %w", err)
		}
		history.AppendAssistant(raw)

		turn, err := react.ParseTurn(raw)
		if err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		if turn.Thought != "" {
			if err := l.events.Publish(ThoughtEvent{Text: turn.Thought}); err != nil {
				return nil, err
			}
		}

		if turn.IsFinal {
			state.Status = StatusFinalAnswer
			if err := l.events.Publish(FinalAnswerEvent{Text: turn.FinalAnswer}); err != nil {
				return nil, err
			}
			return &Result{RunState: state, Answer: turn.FinalAnswer}, nil
		}

		call, err := react.ParseActionCall(turn.Action)
		if err != nil {
			return nil, fmt.Errorf("parse action: %w", err)
		}
		if err := l.events.Publish(ActionEvent{Tool: call.Name, Args: call.Args, Display: formatCall(call)}); err != nil {
			return nil, err
		}

		approved, err := l.gate.Approve(ctx, call.Name)
		if err != nil {
			return nil, fmt.Errorf("confirmation: %w", err)
		}
		if !approved {
			state.Status = StatusCancelled
			if err := l.events.Publish(CancelledEvent{Tool: call.Name}); err != nil {
				return nil, err
			}
			return &Result{RunState: state, Answer: CancelMessage}, nil
		}

		observation := l.tools.Dispatch(ctx, call.Name, call.Args)
		history.AppendUser(react.WrapObservation(observation))
		if err := l.events.Publish(ObservationEvent{Text: observation}); err != nil {
			return nil, err
		}
	}
}
