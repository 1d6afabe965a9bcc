package types

import "context"

// Responder answers questions no local intent matches. Implementations must
// return a well-formed StructuredResponse or an error; callers convert errors
// into error-kind responses rather than propagating them.
type Responder interface {
	Respond(ctx context.Context, question string, history []ConversationTurn) (*StructuredResponse, error)
	Model() string
}
