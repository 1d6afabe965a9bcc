package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohithhhh/maersk-copilot/internal/intent"
	"github.com/mohithhhh/maersk-copilot/internal/types"
)

// ErrSessionBusy is returned when a session already has a query in flight.
// Each conversation is strictly sequential; the caller decides whether to
// queue or reject.
var ErrSessionBusy = errors.New("conversation already has a query in flight")

// session holds one conversation: its log and the single-slot pending-input
// marker. The marker lives for exactly one round trip.
type session struct {
	mu      sync.Mutex
	busy    bool
	pending types.AwaitingInput
	history []types.ConversationTurn
}

// Manager owns conversation state across turns and drives the intent router.
// Sessions are independent; the shared dataset underneath is read-only.
type Manager struct {
	router *intent.Router
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(router *intent.Router, logger *zap.Logger) *Manager {
	return &Manager{
		router:   router,
		logger:   logger.Named("conversation"),
		sessions: make(map[string]*session),
	}
}

// NewSession registers a fresh conversation and returns its id.
func (m *Manager) NewSession() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &session{}
	m.mu.Unlock()
	m.logger.Debug("session created", zap.String("sessionID", id))
	return id
}

func (m *Manager) get(id string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &session{}
		m.sessions[id] = s
	}
	return s
}

// Ask resolves one user turn for the session. The pending marker set by the
// previous turn is consumed before routing; the one returned by this turn, if
// any, is stored for the next.
func (m *Manager) Ask(ctx context.Context, sessionID, question string) (*types.StructuredResponse, error) {
	s := m.get(sessionID)

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	s.busy = true
	pending := s.pending
	s.pending = types.AwaitingNone
	history := make([]types.ConversationTurn, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	resp, newPending := m.router.Route(ctx, question, pending, history)

	s.mu.Lock()
	s.history = append(s.history,
		types.ConversationTurn{Role: types.RoleUser, Content: question},
		types.ConversationTurn{Role: types.RoleAssistant, Content: resp.Summary, Structured: resp},
	)
	s.pending = newPending
	s.busy = false
	s.mu.Unlock()

	return resp, nil
}

// Pending reports the identifier kind the session is currently soliciting.
func (m *Manager) Pending(sessionID string) types.AwaitingInput {
	s := m.get(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// History returns a copy of the session's conversation log.
func (m *Manager) History(sessionID string) []types.ConversationTurn {
	s := m.get(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}
