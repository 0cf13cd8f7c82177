package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// Session — состояние одной встречи. Единственный «писатель»: каждый интент
// и каждый тик часов применяется целиком под одним мьютексом вместе со всеми
// производными эффектами (промоушен, уведомления, статистика).
type Session struct {
	id    string
	clock Clock
	cfg   Settings

	mu            sync.Mutex
	users         []domain.User
	currentUserID string
	agenda        []domain.AgendaItem
	queue         []domain.SpeakingQueueItem
	timer         *domain.Timer
	stats         map[string]*domain.SpeakingStats
	notifications []notice
	turn          *turnPrompt
	reactionDue   map[string]time.Time
	startedAt     time.Time
	lastActivity  time.Time

	onChange func()
}

func New(id string, clock Clock, cfg Settings) *Session {
	if clock == nil {
		clock = SystemClock()
	}
	now := clock.Now()
	return &Session{
		id:           id,
		clock:        clock,
		cfg:          cfg.withDefaults(),
		stats:        make(map[string]*domain.SpeakingStats),
		reactionDue:  make(map[string]time.Time),
		startedAt:    now,
		lastActivity: now,
	}
}

func (s *Session) ID() string { return s.id }

// SetOnChange регистрирует колбэк, вызываемый после каждой мутации.
// Вызов идёт без удержания мьютекса: колбэк может спокойно читать Snapshot.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Touch обновляет отметку активности встречи (best-effort, из middleware).
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActivity = s.clock.Now()
	s.mu.Unlock()
}

// Tick — один секундный импульс часов. Порядок эффектов фиксирован:
// таймер, статистика, реакции, авто-скип очереди, авто-скрытие уведомлений.
func (s *Session) Tick() {
	s.mu.Lock()
	now := s.clock.Now()

	if t := s.timer; t != nil && t.IsRunning && t.Remaining > 0 {
		t.Remaining--
		if t.Remaining == 0 {
			t.IsRunning = false
			s.publish(domain.NotificationInfo, "Timer has ended", "", noticeTimerEndMS)
		}
	}

	for i := range s.users {
		u := &s.users[i]
		if u.IsSpeaking && !u.IsMuted {
			if st := s.stats[u.ID]; st != nil {
				st.TotalTime++
			}
		}
	}

	for id, due := range s.reactionDue {
		if !due.After(now) {
			// guard-then-act: к этому моменту реакцию могли перезаписать,
			// тогда дедлайн в map уже новый и сюда мы не попадём
			if u := s.findUser(id); u != nil {
				u.Reaction = ""
			}
			delete(s.reactionDue, id)
		}
	}

	if s.turn != nil {
		s.turn.remaining--
		if s.turn.remaining <= 0 {
			userID := s.turn.userID
			s.turn = nil
			s.removeFromQueue(userID)
			s.promote()
		}
	}

	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.expiresAt.IsZero() || n.expiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept

	s.mu.Unlock()
	s.changed()
}

// Report собирает снимок встречи для архива.
func (s *Session) Report() domain.HistoricalMeeting {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.users))
	for _, u := range s.users {
		ids = append(ids, u.ID)
	}
	return domain.HistoricalMeeting{
		ID:            s.id,
		Date:          s.startedAt,
		Participants:  ids,
		SpeakingStats: s.statsLocked(),
		Duration:      int(s.clock.Now().Sub(s.startedAt).Minutes()),
	}
}

// --- helpers (вызываются только под mu) ---

func (s *Session) findUser(id string) *domain.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Session) activeSpeaker() *domain.User {
	for i := range s.users {
		if s.users[i].IsSpeaking {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Session) logDebug(msg string, args ...any) {
	slog.Debug(msg, append([]any{"meeting", s.id}, args...)...)
}
