package session

import (
	"context"
	"sync"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// Manager владеет сессиями процессa: meetingID -> *Session.
// Каждая сессия независима и заперта своим мьютексом; менеджер лишь
// раздаёт их и гонит общий секундный тик.
type Manager struct {
	clock Clock
	cfg   Settings

	mu       sync.RWMutex
	sessions map[string]*Session

	onChange func(meetingID string)
}

func NewManager(clock Clock, cfg Settings) *Manager {
	if clock == nil {
		clock = SystemClock()
	}
	return &Manager{
		clock:    clock,
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// SetOnChange регистрирует фан-аут изменений (обычно — пуш в WS hub).
func (m *Manager) SetOnChange(fn func(meetingID string)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Manager) GetOrCreate(meetingID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[meetingID]; ok {
		return s
	}
	s := New(meetingID, m.clock, m.cfg)
	s.SetOnChange(func() {
		m.mu.RLock()
		fn := m.onChange
		m.mu.RUnlock()
		if fn != nil {
			fn(meetingID)
		}
	})
	m.sessions[meetingID] = s
	return s
}

func (m *Manager) Get(meetingID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[meetingID]
	if !ok {
		return nil, domain.ErrMeetingNotFound
	}
	return s, nil
}

// TouchMeeting отмечает активность встречи, если сессия существует.
func (m *Manager) TouchMeeting(meetingID string) {
	if s, err := m.Get(meetingID); err == nil {
		s.Touch()
	}
}

// Remove выкидывает сессию (конец встречи).
func (m *Manager) Remove(meetingID string) {
	m.mu.Lock()
	delete(m.sessions, meetingID)
	m.mu.Unlock()
}

// Run гонит секундный импульс по всем сессиям до отмены контекста.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.RLock()
			sessions := make([]*Session, 0, len(m.sessions))
			for _, s := range m.sessions {
				sessions = append(sessions, s)
			}
			m.mu.RUnlock()
			for _, s := range sessions {
				s.Tick()
			}
		case <-ctx.Done():
			return
		}
	}
}
