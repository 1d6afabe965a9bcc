package types

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one entry of a conversation log. User turns carry plain
// text; assistant turns additionally carry the structured response shown for
// that turn.
type ConversationTurn struct {
	Role       Role                `json:"role"`
	Content    string              `json:"content"`
	Structured *StructuredResponse `json:"structured,omitempty"`
}
