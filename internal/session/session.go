package session

import (
	"sync"

	"github.com/google/uuid"
)

// Manager keeps bearer tokens for logged-in members. Tokens live until
// logout or process restart.
type Manager struct {
	mx     sync.RWMutex
	tokens map[string]string
}

func New() *Manager {
	return &Manager{
		tokens: make(map[string]string),
	}
}

// Open issues a new token for the member and returns it.
func (m *Manager) Open(memberUID string) string {
	token := uuid.NewString()

	m.mx.Lock()
	defer m.mx.Unlock()

	m.tokens[token] = memberUID

	return token
}

// MemberUID resolves a token, empty string when unknown.
func (m *Manager) MemberUID(token string) string {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.tokens[token]
}

func (m *Manager) Close(token string) {
	m.mx.Lock()
	defer m.mx.Unlock()

	delete(m.tokens, token)
}

// CloseAll drops every session of the given member, used when the member
// is removed from the roster.
func (m *Manager) CloseAll(memberUID string) {
	m.mx.Lock()
	defer m.mx.Unlock()

	for t, uid := range m.tokens {
		if uid == memberUID {
			delete(m.tokens, t)
		}
	}
}

func (m *Manager) Count() int {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return len(m.tokens)
}
