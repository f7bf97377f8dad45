package orchestrator

import "fmt"

// LineAppender is the slice of the run log the loop needs: an ordered
// append of one line at a time. runlog.FileSink satisfies it.
type LineAppender interface {
	Append(line string) error
}

// LineSink records every loop event as one run-log line, giving a run
// a replayable audit trail alongside the request/response payloads the
// reasoners log themselves.
type LineSink struct {
	lines LineAppender
}

// NewLineSink adapts a line appender to the event sink contract.
func NewLineSink(lines LineAppender) *LineSink {
	return &LineSink{lines: lines}
}

// Publish implements EventSink. An append failure aborts the run; a
// run without its audit trail is worse than no run.
func (s *LineSink) Publish(e Event) error {
	return s.lines.Append(formatEventLine(e))
}

func formatEventLine(e Event) string {
	switch ev := e.(type) {
	case QuestionEvent:
		return "Question: " + ev.Task
	case ThinkingEvent:
		return fmt.Sprintf("Step %d: requesting model", ev.Step)
	case ThoughtEvent:
		return "Thought: " + ev.Text
	case ActionEvent:
		return "Action: " + ev.Display
	case ObservationEvent:
		return "Observation: " + ev.Text
	case FinalAnswerEvent:
		return "Final answer: " + ev.Text
	case CancelledEvent:
		return fmt.Sprintf("Operation cancelled by user before dispatching %s", ev.Tool)
	case StepLimitEvent:
		return fmt.Sprintf("Reached maximum step limit (%d). Stopping to avoid infinite loop.", ev.Max)
	default:
		return fmt.Sprintf("%v", e)
	}
}
