package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/reagent/internal/orchestrator"
)

var (
	thoughtLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	actionLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	observationLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	answerLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	noticeStyle           = lipgloss.NewStyle().Faint(true)

	// ErrorStyle marks fatal run failures on stderr.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// MarkdownRenderer turns markdown into terminal output. The final
// answer goes through it; everything else is printed as-is.
type MarkdownRenderer interface {
	Render(content string) (string, error)
}

// GlamourMarkdown renders markdown with glamour's automatic light/dark
// style.
type GlamourMarkdown struct {
	// WordWrap is the rendering width; zero keeps glamour's default.
	WordWrap int
}

// Render implements MarkdownRenderer.
func (g GlamourMarkdown) Render(content string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if g.WordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(g.WordWrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("build markdown renderer: %w", err)
	}
	return r.Render(content)
}

// Renderer prints loop events to the terminal in reading order. It is
// the interactive half of the event pipeline; the run log sink is the
// durable half.
type Renderer struct {
	out      io.Writer
	markdown MarkdownRenderer
}

// NewRenderer writes styled events to out. A nil markdown renderer
// falls back to printing final answers verbatim.
func NewRenderer(out io.Writer, markdown MarkdownRenderer) *Renderer {
	return &Renderer{out: out, markdown: markdown}
}

// Publish implements orchestrator.EventSink.
func (r *Renderer) Publish(e orchestrator.Event) error {
	switch ev := e.(type) {
	case orchestrator.QuestionEvent:
		// The user just typed the task; echoing it adds nothing.
		return nil
	case orchestrator.ThinkingEvent:
		return r.println("\n" + noticeStyle.Render(fmt.Sprintf("Requesting model, please wait... (step %d)", ev.Step)))
	case orchestrator.ThoughtEvent:
		return r.section(thoughtLabelStyle.Render("Thought:"), ev.Text)
	case orchestrator.ActionEvent:
		return r.section(actionLabelStyle.Render("Action:"), ev.Display)
	case orchestrator.ObservationEvent:
		return r.section(observationLabelStyle.Render("Observation:"), ev.Text)
	case orchestrator.FinalAnswerEvent:
		return r.finalAnswer(ev.Text)
	case orchestrator.CancelledEvent:
		return r.println("\n" + noticeStyle.Render("Operation cancelled."))
	case orchestrator.StepLimitEvent:
		return r.println("\n" + noticeStyle.Render(fmt.Sprintf("Reached maximum step limit (%d). Stopping to avoid infinite loop.", ev.Max)))
	default:
		return nil
	}
}

func (r *Renderer) finalAnswer(text string) error {
	if err := r.println("\n" + answerLabelStyle.Render("Final answer")); err != nil {
		return err
	}
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(text); err == nil {
			return r.println(rendered)
		}
		// Markdown rendering is cosmetic; fall through to plain text.
	}
	return r.println(text)
}

func (r *Renderer) section(label, body string) error {
	_, err := fmt.Fprintf(r.out, "\n%s %s\n", label, body)
	return err
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.out, s)
	return err
}
