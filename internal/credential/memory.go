package credential

import "sync"

// MemoryStore holds the credential in process memory. Used by tests and
// anywhere persistence across restarts is not wanted.
type MemoryStore struct {
	mu   sync.Mutex
	cred *Credential
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns a copy of the stored credential, or (nil, nil) when signed out.
func (s *MemoryStore) Get() (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, nil
	}
	copied := *s.cred
	return &copied, nil
}

// Save replaces the stored credential.
func (s *MemoryStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cred
	s.cred = &copied
	return nil
}

// Clear erases the stored credential.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}

// Token returns the stored access token for auth injection.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil || s.cred.AccessToken == "" {
		return "", false
	}
	return s.cred.AccessToken, true
}
