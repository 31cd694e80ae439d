package session

import (
	"context"
	"sync"
	"time"
)

// Store é a fronteira de persistência das sessões. A implementação deve
// garantir consistência read-your-writes por remetente; o motor não assume
// nenhuma tecnologia de armazenamento específica.
type Store interface {
	// Load retorna a sessão aberta do remetente, ou nil se não houver
	Load(ctx context.Context, sender string) (*Session, error)

	// Save persiste a sessão do remetente
	Save(ctx context.Context, sess *Session) error

	// Clear remove a sessão aberta do remetente
	Clear(ctx context.Context, sender string) error
}

// MemoryStore é um Store em memória com TTL, usado em testes e como
// armazenamento padrão quando não há banco configurado
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemoryStore cria um MemoryStore. Um ttl zero desabilita a expiração.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Load implementa Store.Load. Sessões mais antigas que o TTL são tratadas
// como inexistentes e removidas.
func (s *MemoryStore) Load(_ context.Context, sender string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sender]
	if !ok {
		return nil, nil
	}

	if s.ttl > 0 && time.Since(sess.UpdatedAt) > s.ttl {
		delete(s.sessions, sender)
		return nil, nil
	}

	copied := *sess
	copied.Record = make(map[string]string, len(sess.Record))
	for k, v := range sess.Record {
		copied.Record[k] = v
	}

	return &copied, nil
}

// Save implementa Store.Save
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Sender] = sess
	return nil
}

// Clear implementa Store.Clear
func (s *MemoryStore) Clear(_ context.Context, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sender)
	return nil
}
