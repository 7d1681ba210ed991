package service

import "sync"

// SessionRegistry tracks the most recent token issued to each user so logout
// can drop the entry. It is advisory bookkeeping: a token stays
// cryptographically valid until expiry whether or not an entry exists. The
// registry lives in process memory only and is lost on restart.
type SessionRegistry struct {
	mu     sync.RWMutex
	tokens map[int64]string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{tokens: map[int64]string{}}
}

// Set records token as the current session for userID, replacing any
// previous entry.
func (r *SessionRegistry) Set(userID int64, token string) {
	r.mu.Lock()
	r.tokens[userID] = token
	r.mu.Unlock()
}

// Clear removes the entry for userID. Clearing an absent entry is a no-op.
func (r *SessionRegistry) Clear(userID int64) {
	r.mu.Lock()
	delete(r.tokens, userID)
	r.mu.Unlock()
}

func (r *SessionRegistry) Get(userID int64) (string, bool) {
	r.mu.RLock()
	token, ok := r.tokens[userID]
	r.mu.RUnlock()
	return token, ok
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
