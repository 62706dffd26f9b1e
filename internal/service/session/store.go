package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carelane/carelane/backend/internal/model/chat"
)

// Store keeps all live sessions in process memory. A single mutex
// serializes mutation, so concurrent requests on the same session cannot
// corrupt history ordering. Idle sessions are swept when a new session is
// created; a TTL of zero disables eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*chat.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore bootstraps an empty store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*chat.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Resolve returns the session for id, creating a fresh one (with a new
// identifier) when id is empty or unknown. Never fails.
func (s *Store) Resolve(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if sess, ok := s.sessions[id]; ok {
		sess.LastSeen = now
		return id
	}

	s.evictStale(now)

	id = uuid.NewString()
	s.sessions[id] = &chat.Session{
		ID:        id,
		History:   make([]chat.Turn, 0, 16),
		CreatedAt: now,
		LastSeen:  now,
	}
	return id
}

// MergeProfile overwrites the fields present in update and returns the
// resulting full profile. The id must come from Resolve.
func (s *Store) MergeProfile(id string, update chat.Profile) chat.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return chat.Profile{}
	}
	sess.Profile.Merge(update)
	sess.LastSeen = s.now().UTC()
	return sess.Profile
}

// AppendTurn appends one turn to the session history in place. Unknown ids
// are ignored; callers always resolve first.
func (s *Store) AppendTurn(id, role, text string, timestamp int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.History = append(sess.History, chat.Turn{Role: role, Text: text, Timestamp: timestamp})
	sess.LastSeen = s.now().UTC()
}

// Snapshot returns a copy of the session's history and profile, or false
// when the id is unknown. The copy keeps readers isolated from later
// appends.
func (s *Store) Snapshot(id string) ([]chat.Turn, chat.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, chat.Profile{}, false
	}

	history := make([]chat.Turn, len(sess.History))
	copy(history, sess.History)
	return history, sess.Profile, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// evictStale drops sessions idle for longer than the TTL. Caller holds the
// lock.
func (s *Store) evictStale(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
