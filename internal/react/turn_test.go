package react

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTurn_ActionWithThought(t *testing.T) {
	t.Parallel()

	raw := "<thought>\nI should list the files first.\n</thought>\n<action>run_terminal_command(\"ls\")</action>"
	turn, err := ParseTurn(raw)

	require.NoError(t, err)
	assert.Equal(t, "I should list the files first.", turn.Thought)
	assert.False(t, turn.IsFinal)
	assert.Equal(t, `run_terminal_command("ls")`, turn.Action)
}

func TestParseTurn_ThoughtIsOptional(t *testing.T) {
	t.Parallel()

	turn, err := ParseTurn("<action>read_file(\"main.go\")</action>")

	require.NoError(t, err)
	assert.Empty(t, turn.Thought)
	assert.Equal(t, `read_file("main.go")`, turn.Action)
}

func TestParseTurn_FinalAnswer(t *testing.T) {
	t.Parallel()

	turn, err := ParseTurn("<thought>done</thought><final_answer>The build passes.</final_answer>")

	require.NoError(t, err)
	assert.True(t, turn.IsFinal)
	assert.Equal(t, "The build passes.", turn.FinalAnswer)
	assert.Empty(t, turn.Action)
}

func TestParseTurn_FinalAnswerWinsOverAction(t *testing.T) {
	t.Parallel()

	raw := "<action>run_terminal_command(\"rm -rf /\")</action><final_answer>done</final_answer>"
	turn, err := ParseTurn(raw)

	require.NoError(t, err)
	assert.True(t, turn.IsFinal)
	assert.Equal(t, "done", turn.FinalAnswer)
	assert.Empty(t, turn.Action, "an action on a final turn must never surface")
}

func TestParseTurn_FirstSpanWins(t *testing.T) {
	t.Parallel()

	raw := "<thought>first</thought><thought>second</thought><action>a()</action><action>b()</action>"
	turn, err := ParseTurn(raw)

	require.NoError(t, err)
	assert.Equal(t, "first", turn.Thought)
	assert.Equal(t, "a()", turn.Action)
}

func TestParseTurn_NoDirective(t *testing.T) {
	t.Parallel()

	_, err := ParseTurn("<thought>hmm, let me think some more</thought>")

	assert.True(t, errors.Is(err, ErrNoDirective))
}

func TestParseTurn_UnterminatedFinalAnswer(t *testing.T) {
	t.Parallel()

	_, err := ParseTurn("<final_answer>it never ends")

	assert.True(t, errors.Is(err, ErrUnterminatedFinal))
}

func TestParseTurn_MultilineSpans(t *testing.T) {
	t.Parallel()

	turn, err := ParseTurn("<final_answer>line one\nline two</final_answer>")

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", turn.FinalAnswer)
}

func TestWrapping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<question>do the thing</question>", WrapQuestion("do the thing"))
	assert.Equal(t, "<observation>exit_code=0</observation>", WrapObservation("exit_code=0"))
}
