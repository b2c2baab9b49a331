package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session is the per-connection record. UserID is uuid.Nil for anonymous
// connections.
type Session struct {
	ID     string
	UserID uuid.UUID

	conn *websocket.Conn
	send chan Message
	once sync.Once
}

func newSession(conn *websocket.Conn, userID uuid.UUID, buffer int) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
		send:   make(chan Message, buffer),
	}
}

func (s *Session) Authenticated() bool { return s.UserID != uuid.Nil }

// enqueue reports false when the outbound buffer is full.
func (s *Session) enqueue(msg Message) bool {
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.once.Do(func() { close(s.send) })
}

// Registry holds live sessions keyed by connection id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		s.close()
	}
	r.mu.Unlock()
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
