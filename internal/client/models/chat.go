package models

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type ChatRequest struct {
	Project  int64         `json:"project"`
	Message  string        `json:"message"`
	Contexts []string      `json:"contexts,omitempty"`
	History  []ChatMessage `json:"history,omitempty"`
}

func (c ChatRequest) Validate() error {
	errs := FieldErrors{}
	if c.Project <= 0 {
		errs["project"] = "Project is required"
	}
	if c.Message == "" {
		errs["message"] = "Message cannot be empty"
	}
	return errs.err()
}

type ChatReply struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatContext is a project item the assistant can be pointed at.
type ChatContext struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}
