// Package session holds the per-user interaction state: the store, chat
// history, the selected note and the active view.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rcliao/yournote/internal/model"
	"github.com/rcliao/yournote/internal/store"
)

// Tab is one of the app's views.
type Tab string

const (
	TabWhiteboard Tab = "Whiteboard"
	TabChat       Tab = "AI Chat"
	TabNotes      Tab = "Notes"
	TabExams      Tab = "Exams"
)

// DefaultTab is the view a new session opens on.
const DefaultTab = TabWhiteboard

// Session is explicit state passed to each interaction.
type Session struct {
	ID    string
	Store store.Store

	mu          sync.Mutex
	chat        []model.ChatMessage
	currentNote string
	tab         Tab
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTab opens the session on t instead of DefaultTab.
func WithTab(t Tab) Option {
	return func(s *Session) { s.tab = t }
}

// New starts a session over st with an empty chat and no current note.
func New(st store.Store, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		Store:  st,
		tab:    DefaultTab,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger.Debug("session started", "id", s.ID, "tab", s.tab)
	return s
}

// AppendChat records one chat turn.
func (s *Session) AppendChat(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, model.ChatMessage{Role: role, Content: content})
}

// ClearChat drops the chat history.
func (s *Session) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
}

// Chat returns a copy of the chat history.
func (s *Session) Chat() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// CurrentNote is the selected note id, or "".
func (s *Session) CurrentNote() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentNote
}

func (s *Session) SetCurrentNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentNote = id
}

func (s *Session) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *Session) SetTab(t Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = t
}

// Close releases the store.
func (s *Session) Close() error {
	s.logger.Debug("session closed", "id", s.ID)
	return s.Store.Close()
}
