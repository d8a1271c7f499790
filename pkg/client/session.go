package client

import "sync"

// Session holds the bearer token of one signed-in user. A zero Session is signed out.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns a session that starts with token, which may be empty.
func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Clear() {
	s.SetToken("")
}
