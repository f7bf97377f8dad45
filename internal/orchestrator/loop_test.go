package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/reagent/internal/conversation"
	"github.com/Cyclone1070/reagent/internal/react"
	"github.com/Cyclone1070/reagent/internal/tool"
)

// scriptedReasoner replays canned responses and records what it saw.
type scriptedReasoner struct {
	responses []string
	err       error
	calls     int
	seen      [][]conversation.Message
}

func (s *scriptedReasoner) NextResponse(_ context.Context, msgs []conversation.Message) (string, error) {
	s.seen = append(s.seen, msgs)
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", fmt.Errorf("unexpected reasoner call %d", s.calls+1)
	}
	r := s.responses[s.calls]
	s.calls++
	return r, nil
}

type gateFunc func(ctx context.Context, toolName string) (bool, error)

func (f gateFunc) Approve(ctx context.Context, toolName string) (bool, error) {
	return f(ctx, toolName)
}

func approveAll() gateFunc {
	return func(context.Context, string) (bool, error) { return true, nil }
}

type dispatcherFunc func(ctx context.Context, name string, args []any) string

func (f dispatcherFunc) Dispatch(ctx context.Context, name string, args []any) string {
	return f(ctx, name, args)
}

// recordingSink keeps every published event in order.
type recordingSink struct {
	events []Event
}

func (r *recordingSink) Publish(e Event) error {
	r.events = append(r.events, e)
	return nil
}

func TestRun_FinalAnswerAfterOneAction(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		"<thought>check files</thought><action>list()</action>",
		"<final_answer>two files found</final_answer>",
	}}
	var dispatched []string
	tools := dispatcherFunc(func(_ context.Context, name string, _ []any) string {
		dispatched = append(dispatched, name)
		return "a.txt, b.txt"
	})
	loop := NewLoop(reasoner, tools, approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "system prompt", "count the files")

	require.NoError(t, err)
	assert.Equal(t, StatusFinalAnswer, res.Status)
	assert.Equal(t, "two files found", res.Answer)
	assert.Equal(t, 2, res.StepCount)
	assert.Equal(t, []string{"list"}, dispatched)
	assert.NotEmpty(t, res.ID)
}

func TestRun_SeedsHistoryAndFeedsObservationsBack(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		"<action>list()</action>",
		"<final_answer>done</final_answer>",
	}}
	tools := dispatcherFunc(func(context.Context, string, []any) string { return "ok" })
	loop := NewLoop(reasoner, tools, approveAll(), nil, 0)

	_, err := loop.Run(context.Background(), "be helpful", "do it")
	require.NoError(t, err)

	require.Len(t, reasoner.seen, 2)

	first := reasoner.seen[0]
	require.Len(t, first, 2)
	assert.Equal(t, conversation.RoleSystem, first[0].Role)
	assert.Equal(t, "be helpful", first[0].Content)
	assert.Equal(t, conversation.RoleUser, first[1].Role)
	assert.Equal(t, "<question>do it</question>", first[1].Content)

	second := reasoner.seen[1]
	require.Len(t, second, 4)
	assert.Equal(t, conversation.RoleAssistant, second[2].Role)
	assert.Equal(t, conversation.RoleUser, second[3].Role)
	assert.Equal(t, "<observation>ok</observation>", second[3].Content)
}

func TestRun_FinalAnswerWinsOverAction(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		"<action>rm()</action><final_answer>all good</final_answer>",
	}}
	tools := dispatcherFunc(func(context.Context, string, []any) string {
		t.Error("dispatch must not happen on a final-answer turn")
		return ""
	})
	loop := NewLoop(reasoner, tools, approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	require.NoError(t, err)
	assert.Equal(t, StatusFinalAnswer, res.Status)
	assert.Equal(t, "all good", res.Answer)
}

func TestRun_StepLimitTerminatesThirdAttempt(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		"<action>poke()</action>",
		"<action>poke()</action>",
		"<action>poke()</action>",
	}}
	tools := dispatcherFunc(func(context.Context, string, []any) string { return "nothing" })
	loop := NewLoop(reasoner, tools, approveAll(), nil, 2)

	res, err := loop.Run(context.Background(), "sys", "task")

	require.NoError(t, err)
	assert.Equal(t, StatusStepLimit, res.Status)
	assert.Equal(t, 2, reasoner.calls, "the third attempt must stop before calling the reasoner")
	assert.Equal(t, 3, res.StepCount)
	assert.Equal(t, "Reached maximum step limit (2). Stopping to avoid infinite loop.", res.Answer)
}

func TestRun_GateDenialCancelsImmediately(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		`<action>run_terminal_command("rm -rf build")</action>`,
	}}
	tools := dispatcherFunc(func(context.Context, string, []any) string {
		t.Error("a denied action must not be dispatched")
		return ""
	})
	gate := gateFunc(func(_ context.Context, toolName string) (bool, error) {
		assert.Equal(t, "run_terminal_command", toolName)
		return false, nil
	})
	loop := NewLoop(reasoner, tools, gate, nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, res.Status)
	assert.Equal(t, "Operation cancelled by user", res.Answer)
	assert.Equal(t, 1, reasoner.calls, "no further reasoner call after a denial")
}

func TestRun_UnknownToolKeepsTheRunAlive(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		"<action>no_such_tool()</action>",
		"<final_answer>recovered</final_answer>",
	}}
	registry, err := tool.NewRegistry()
	require.NoError(t, err)
	loop := NewLoop(reasoner, registry, approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	require.NoError(t, err)
	assert.Equal(t, StatusFinalAnswer, res.Status)
	require.Len(t, reasoner.seen, 2)

	last := reasoner.seen[1][len(reasoner.seen[1])-1]
	assert.Equal(t, conversation.RoleUser, last.Role)
	assert.Contains(t, last.Content, "<observation>")
	assert.Contains(t, last.Content, `tool "no_such_tool" does not exist`)
}

func TestRun_ToolPanicBecomesObservation(t *testing.T) {
	t.Parallel()

	panicking := tool.NewFunc(tool.Descriptor{Name: "boom"}, func(context.Context, struct{}) (string, error) {
		panic("boom goes the tool")
	})
	registry, err := tool.NewRegistry(panicking)
	require.NoError(t, err)

	reasoner := &scriptedReasoner{responses: []string{
		"<action>boom()</action>",
		"<final_answer>survived</final_answer>",
	}}
	loop := NewLoop(reasoner, registry, approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	require.NoError(t, err)
	assert.Equal(t, "survived", res.Answer)

	last := reasoner.seen[1][len(reasoner.seen[1])-1]
	assert.Contains(t, last.Content, "Tool execution error:")
	assert.Contains(t, last.Content, "boom goes the tool")
}

func TestRun_NoDirectiveIsFatal(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{"<thought>just musing</thought>"}}
	loop := NewLoop(reasoner, dispatcherFunc(nil), approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, react.ErrNoDirective))
}

func TestRun_BadActionSyntaxIsFatal(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{"<action>this is not a call</action>"}}
	loop := NewLoop(reasoner, dispatcherFunc(nil), approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, react.ErrBadActionSyntax))
}

func TestRun_ReasonerErrorIsFatal(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{err: errors.New("upstream 500")}
	loop := NewLoop(reasoner, dispatcherFunc(nil), approveAll(), nil, 0)

	res, err := loop.Run(context.Background(), "sys", "task")

	assert.Nil(t, res)
	assert.ErrorContains(t, err, "reasoner: upstream 500")
}

func TestRun_GateErrorIsFatal(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{"<action>x()</action>"}}
	gate := gateFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("stdin closed")
	})
	loop := NewLoop(reasoner, dispatcherFunc(nil), gate, nil, 0)

	_, err := loop.Run(context.Background(), "sys", "task")

	assert.ErrorContains(t, err, "confirmation: stdin closed")
}

func TestRun_ContextCancellationStopsTheLoop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := NewLoop(&scriptedReasoner{}, dispatcherFunc(nil), approveAll(), nil, 0)

	_, err := loop.Run(ctx, "sys", "task")

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_PublishesEventsInOrder(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{
		`<thought>look around</thought><action>list("src")</action>`,
		"<final_answer>done</final_answer>",
	}}
	tools := dispatcherFunc(func(context.Context, string, []any) string { return "empty" })
	sink := &recordingSink{}
	loop := NewLoop(reasoner, tools, approveAll(), sink, 0)

	_, err := loop.Run(context.Background(), "sys", "task")
	require.NoError(t, err)

	var kinds []string
	for _, e := range sink.events {
		kinds = append(kinds, fmt.Sprintf("%T", e))
	}
	want := []string{
		"orchestrator.QuestionEvent",
		"orchestrator.ThinkingEvent",
		"orchestrator.ThoughtEvent",
		"orchestrator.ActionEvent",
		"orchestrator.ObservationEvent",
		"orchestrator.ThinkingEvent",
		"orchestrator.FinalAnswerEvent",
	}
	assert.Equal(t, want, kinds)

	action, ok := sink.events[3].(ActionEvent)
	require.True(t, ok)
	assert.Equal(t, "list", action.Tool)
	assert.Equal(t, "list(src)", action.Display)
}

func TestRun_FailingSinkAbortsTheRun(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{responses: []string{"<final_answer>x</final_answer>"}}
	loop := NewLoop(reasoner, dispatcherFunc(nil), approveAll(), failingSink{}, 0)

	_, err := loop.Run(context.Background(), "sys", "task")

	assert.ErrorContains(t, err, "log device full")
}

type failingSink struct{}

func (failingSink) Publish(Event) error { return errors.New("log device full") }

func TestMultiSink_FansOutInOrder(t *testing.T) {
	t.Parallel()

	a := &recordingSink{}
	b := &recordingSink{}
	sink := MultiSink{a, b}

	require.NoError(t, sink.Publish(ThoughtEvent{Text: "hi"}))

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, a.events[0], b.events[0])
}

func TestFormatCall(t *testing.T) {
	t.Parallel()

	call := &react.ActionCall{Name: "f", Args: []any{"text", int64(3), true, nil, 2.5}}

	display := formatCall(call)

	assert.Equal(t, "f(text, 3, true, none, 2.5)", display)
	assert.False(t, strings.Contains(display, "<nil>"))
}
