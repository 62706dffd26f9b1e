package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/carelane/carelane/backend/internal/model/chat"
	"github.com/carelane/carelane/backend/internal/service/ai"
	"github.com/carelane/carelane/backend/internal/service/session"
)

// ErrEmptyMessage rejects chat turns whose message is blank after trimming.
var ErrEmptyMessage = errors.New("Empty message")

// safetyFooter is appended to every successful model reply.
const safetyFooter = "\n\n—\nThis assistant is not a doctor. For diagnosis or treatment, " +
	"consult a licensed clinician. Seek emergency care for red-flag symptoms."

// Result is the outcome of one chat turn. On upstream failure Reply holds
// the error text that was persisted, so the caller can still show it.
type Result struct {
	SessionID string
	Reply     string
	Timestamp int64
}

// Service orchestrates a single chat turn end to end.
type Service struct {
	store *session.Store
	llm   ai.Completer
	now   func() time.Time
}

// NewService wires the session store and chat-completion upstream.
func NewService(store *session.Store, llm ai.Completer) *Service {
	return &Service{store: store, llm: llm, now: time.Now}
}

// HandleChat records the inbound turn, calls the model with the assembled
// context, and records the reply. Exactly two turns are appended per
// accepted call, upstream success or not; on failure the persisted
// assistant turn carries the error text and the error is returned alongside
// a Result that still names the session.
func (s *Service) HandleChat(ctx context.Context, sessionID, message string) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, ErrEmptyMessage
	}

	sessionID = s.store.Resolve(sessionID)
	ts := s.now().Unix()
	s.store.AppendTurn(sessionID, chat.RoleUser, message, ts)

	history, profile, _ := s.store.Snapshot(sessionID)
	// The inbound turn is already in history; assemble from the turns
	// before it so the new message appears exactly once, last.
	messages := ai.BuildMessages(history[:len(history)-1], profile, message)

	reply, err := s.llm.Complete(ctx, messages)
	if err != nil {
		errText := fmt.Sprintf("Sorry, I hit an error: %v", err)
		s.store.AppendTurn(sessionID, chat.RoleAssistant, errText, s.now().Unix())
		log.Printf("[chat] completion failed for session=%s: %v", sessionID, err)
		return Result{SessionID: sessionID, Reply: errText, Timestamp: ts}, err
	}

	reply += safetyFooter
	s.store.AppendTurn(sessionID, chat.RoleAssistant, reply, s.now().Unix())
	return Result{SessionID: sessionID, Reply: reply, Timestamp: ts}, nil
}
