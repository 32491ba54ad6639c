package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"
)

// Store holds session records keyed by token. Exactly one implementation is
// durable; tests use the in-memory one.
type Store interface {
	Put(sess model.Session) error
	Get(token string) (model.Session, bool)
	Delete(token string) error
	Len() int
}

// FileStore persists all sessions as a single JSON file. The file is read
// once at construction and rewritten on every mutation. A missing or
// unreadable file starts the store empty rather than failing startup.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	sessions map[string]model.Session
	log      *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	s := &FileStore{
		path:     path,
		sessions: make(map[string]model.Session),
		log:      log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Could not read session file, starting empty", "path", path, "error", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.sessions); err != nil {
		log.Warn("Could not parse session file, starting empty", "path", path, "error", err)
		s.sessions = make(map[string]model.Session)
	}
	return s
}

func (s *FileStore) Put(sess model.Session) error {
	if sess.Token == "" {
		return fmt.Errorf("session token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return s.flush()
}

func (s *FileStore) Get(token string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *FileStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return s.flush()
}

func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// flush rewrites the whole file under the write lock. The set is tiny (one
// record per signed-in user), so a full rewrite is fine.
func (s *FileStore) flush() error {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// MemStore is the test double for Store.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]model.Session)}
}

func (s *MemStore) Put(sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *MemStore) Get(token string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *MemStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
