package sessionguard

import "sync"

// Credential is the persisted token/email pair. Its presence is necessary but
// never sufficient: only the identity endpoint proves authentication.
type Credential struct {
	Token string
	Email string
}

// CredentialStore abstracts the flat persisted store holding the credential.
// Implementations wrap whatever storage the host app uses; MemoryStore serves
// embedding and tests.
type CredentialStore interface {
	GetCredential() (Credential, bool)
	ClearCredential()
}

// MemoryStore is an in-memory CredentialStore.
type MemoryStore struct {
	mu   sync.Mutex
	cred Credential
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetCredential(cred Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.set = true
}

// GetCredential reports the stored pair. A credential missing either half is
// treated as absent.
func (s *MemoryStore) GetCredential() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.cred.Token == "" || s.cred.Email == "" {
		return Credential{}, false
	}
	return s.cred, true
}

func (s *MemoryStore) ClearCredential() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
	s.set = false
}
