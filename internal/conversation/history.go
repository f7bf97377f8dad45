// Package conversation holds the append-only message transcript a run
// accumulates and replays to the model on every step.
package conversation

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is the append-only transcript of a single run. The first
// message is always the system prompt and the second the user's task;
// both are fixed at construction so the shape cannot be violated later.
// A History belongs to one goroutine; it does no locking.
type History struct {
	messages []Message
}

// NewHistory seeds a transcript with the system prompt and the initial
// user message.
func NewHistory(systemPrompt, initialUserMessage string) *History {
	return &History{messages: []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: initialUserMessage},
	}}
}

// AppendAssistant records a raw model response.
func (h *History) AppendAssistant(content string) {
	h.messages = append(h.messages, Message{Role: RoleAssistant, Content: content})
}

// AppendUser records a user-role message, e.g. a wrapped observation.
func (h *History) AppendUser(content string) {
	h.messages = append(h.messages, Message{Role: RoleUser, Content: content})
}

// Messages returns a copy of the transcript in order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len reports the number of recorded messages.
func (h *History) Len() int {
	return len(h.messages)
}
