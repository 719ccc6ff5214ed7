package gate

import "sync"

// Session keys, matching the web client's tab-scoped storage; here they
// are process-scoped.
const (
	keySpreadActive = "vd_spread_active"
	keySpreadID     = "vd_spread_id"
	keySpreadTS     = "vd_spread_ts"
)

// SessionStore is a small string key-value store scoped to one client
// instance.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemSession is the default in-process SessionStore.
type MemSession struct {
	mu sync.Mutex
	kv map[string]string
}

func NewMemSession() *MemSession {
	return &MemSession{kv: make(map[string]string)}
}

func (s *MemSession) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	return v, ok
}

func (s *MemSession) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
}

func (s *MemSession) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kv, key)
}
