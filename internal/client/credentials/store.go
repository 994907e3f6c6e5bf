// Package credentials persists the single long-lived bearer token used to
// authenticate upload-token requests.
package credentials

import (
	"sync"

	"github.com/dmitrijs2005/photosync/internal/common"
)

// Store keeps one secret under a fixed service and account. Save overwrites
// any previous value; Read has no side effects.
type Store interface {
	Save(token string) error
	Read() (string, bool)
}

// Key is the namespaced name the token is stored under.
func Key() string {
	return common.CredentialService + "/" + common.CredentialAccount
}

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = token, true
	return nil
}

func (m *MemoryStore) Read() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.set
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = "", false
	return nil
}
