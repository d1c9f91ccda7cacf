package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Store keeps the live cart sessions, keyed by an opaque session ID handed
// to the terminal that opened it. Sessions are never persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: map[string]*session{}}
}

// Create opens a new empty cart session and returns its ID.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.sessions[id] = &session{cart: New(), lastSeen: time.Now()}
	return id
}

// Get returns the session's cart, refreshing its idle timer.
func (s *Store) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = time.Now()
	return sess.cart, true
}

// Delete destroys the session. Called after a successful checkout and on
// explicit abandonment.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// StartCleanupLoop drops sessions idle for longer than maxIdle. Runs
// forever; start it in a goroutine.
func (s *Store) StartCleanupLoop(interval, maxIdle time.Duration) {
	for {
		time.Sleep(interval)
		s.mu.Lock()
		for id, sess := range s.sessions {
			if time.Since(sess.lastSeen) > maxIdle {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
