package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Store persiste el estado durable del cliente: el bearer token de la
// sesión y la preferencia de tema. Es el equivalente del storage local
// del navegador.
type Store interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error

	SaveTheme(theme string) error
	LoadTheme() (string, error)
}

type storeState struct {
	Token string `json:"token,omitempty"`
	Theme string `json:"theme,omitempty"`
}

// FileStore guarda el estado como JSON en un archivo.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("store path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) SaveToken(token string) error {
	return s.mutate(func(st *storeState) { st.Token = token })
}

func (s *FileStore) LoadToken() (string, error) {
	st, err := s.read()
	if err != nil {
		return "", err
	}
	return st.Token, nil
}

func (s *FileStore) ClearToken() error {
	return s.mutate(func(st *storeState) { st.Token = "" })
}

func (s *FileStore) SaveTheme(theme string) error {
	return s.mutate(func(st *storeState) { st.Theme = theme })
}

func (s *FileStore) LoadTheme() (string, error) {
	st, err := s.read()
	if err != nil {
		return "", err
	}
	return st.Theme, nil
}

func (s *FileStore) read() (storeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *FileStore) readLocked() (storeState, error) {
	var st storeState
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, err
	}
	if len(b) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(b, &st); err != nil {
		// Archivo corrupto: arrancar de cero antes que trabar el login.
		return storeState{}, nil
	}
	return st, nil
}

func (s *FileStore) mutate(fn func(*storeState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.readLocked()
	if err != nil {
		return err
	}
	fn(&st)

	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// MemoryStore es un Store en memoria para tests.
type MemoryStore struct {
	mu sync.Mutex
	st storeState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Token = token
	return nil
}

func (s *MemoryStore) LoadToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Token, nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Token = ""
	return nil
}

func (s *MemoryStore) SaveTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Theme = theme
	return nil
}

func (s *MemoryStore) LoadTheme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Theme, nil
}
