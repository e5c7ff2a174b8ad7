package promptsmith

import (
	"strings"
	"sync"
)

// Keyring holds the API key for the lifetime of one session. The key is
// kept in memory only and is never persisted.
type Keyring struct {
	mu    sync.RWMutex
	token string
}

// NewKeyring returns an empty Keyring.
func NewKeyring() *Keyring {
	return &Keyring{}
}

// Set stores the trimmed token. Blank tokens are ignored.
func (k *Keyring) Set(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	k.mu.Lock()
	k.token = token
	k.mu.Unlock()
}

// Clear removes the stored token.
func (k *Keyring) Clear() {
	k.mu.Lock()
	k.token = ""
	k.mu.Unlock()
}

// Get returns the stored token and whether one is present.
func (k *Keyring) Get() (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.token, k.token != ""
}

// Present reports whether a token is stored.
func (k *Keyring) Present() bool {
	_, ok := k.Get()
	return ok
}
