package session

import (
	"fmt"
	"sync"

	"github.com/lukman83/showcase/internal/fileutil"
)

// Store persists the client state shared across commands: the admin bearer
// token, the preferred UI language and the preferred auto-translate language.
type Store interface {
	Token() string
	SetToken(token string) error
	ClearToken() error
	Language() string
	SetLanguage(lang string) error
	TranslateLanguage() string
	SetTranslateLanguage(lang string) error
}

// State is the persisted form of the client state.
type State struct {
	Token             string `json:"admin_token,omitempty"`
	Language          string `json:"language,omitempty"`
	TranslateLanguage string `json:"auto_translate_lang,omitempty"`
}

// FileStore keeps State in a JSON file and writes it through on every change.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state State
}

// NewFileStore opens the state file at path. A missing file starts empty.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := fileutil.ReadJSON(path, &s.state); err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	return s, nil
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *FileStore) SetToken(token string) error {
	return s.update(func(st *State) { st.Token = token })
}

func (s *FileStore) ClearToken() error {
	return s.update(func(st *State) { st.Token = "" })
}

func (s *FileStore) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Language
}

func (s *FileStore) SetLanguage(lang string) error {
	return s.update(func(st *State) { st.Language = lang })
}

func (s *FileStore) TranslateLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TranslateLanguage
}

func (s *FileStore) SetTranslateLanguage(lang string) error {
	return s.update(func(st *State) { st.TranslateLanguage = lang })
}

func (s *FileStore) update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	fn(&next)
	if err := fileutil.WriteJSON(s.path, next, 0o600); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	s.state = next
	return nil
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

// NewMemoryStore returns a MemoryStore seeded with st.
func NewMemoryStore(st State) *MemoryStore {
	return &MemoryStore{state: st}
}

func (m *MemoryStore) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

func (m *MemoryStore) SetToken(token string) error {
	m.mu.Lock()
	m.state.Token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) ClearToken() error { return m.SetToken("") }

func (m *MemoryStore) Language() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Language
}

func (m *MemoryStore) SetLanguage(lang string) error {
	m.mu.Lock()
	m.state.Language = lang
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) TranslateLanguage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.TranslateLanguage
}

func (m *MemoryStore) SetTranslateLanguage(lang string) error {
	m.mu.Lock()
	m.state.TranslateLanguage = lang
	m.mu.Unlock()
	return nil
}
