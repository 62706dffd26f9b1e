package chat

// Turn roles. History only ever stores user and assistant turns; system is
// used for prompt messages assembled per request.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn persists one message of a conversation for history/audit.
type Turn struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// PromptMessage is one entry of the message list sent to the chat model.
// Constructed per request, never stored.
type PromptMessage struct {
	Role    string
	Content string
}
