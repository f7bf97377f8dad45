package orchestrator

// Status is the terminal state of a run.
type Status string

const (
	StatusRunning     Status = "running"
	StatusFinalAnswer Status = "final_answer"
	StatusStepLimit   Status = "step_limit_reached"
	StatusCancelled   Status = "cancelled"
)

// RunState tracks one run's progress. StepCount increments exactly once
// per loop iteration, before the reasoner is called.
type RunState struct {
	ID        string
	StepCount int
	MaxSteps  int
	Status    Status
}

// Result is what a completed (non-fatal) run hands back: the closing
// state plus the answer text. For StatusStepLimit and StatusCancelled
// the answer is the corresponding fixed message.
type Result struct {
	RunState
	Answer string
}
