package session

import (
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// Snapshot — read-only срез состояния встречи для презентационного слоя.
// Уведомления сюда не входят: они фильтруются по пользователю отдельно
// через NotificationsFor.
type Snapshot struct {
	MeetingID       string
	Users           []domain.User
	CurrentUserID   string
	ActiveSpeakerID string
	Agenda          []domain.AgendaItem
	Queue           []domain.SpeakingQueueItem
	Timer           *domain.Timer
	Stats           []domain.SpeakingStats
	TurnPending     bool
	TurnRemaining   int
	StartedAt       time.Time
	LastActivity    time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		MeetingID:     s.id,
		CurrentUserID: s.currentUserID,
		Users:         append([]domain.User(nil), s.users...),
		Agenda:        append([]domain.AgendaItem(nil), s.agenda...),
		Queue:         append([]domain.SpeakingQueueItem(nil), s.queue...),
		Stats:         s.statsLocked(),
		StartedAt:     s.startedAt,
		LastActivity:  s.lastActivity,
	}
	if sp := s.activeSpeaker(); sp != nil {
		snap.ActiveSpeakerID = sp.ID
	}
	if s.timer != nil {
		t := *s.timer
		snap.Timer = &t
	}
	if s.turn != nil {
		snap.TurnPending = true
		snap.TurnRemaining = s.turn.remaining
	}
	return snap
}

// Users возвращает копию состава участников.
func (s *Session) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.users...)
}

// User возвращает копию записи участника.
func (s *Session) User(userID string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findUser(userID); u != nil {
		return *u, nil
	}
	return domain.User{}, domain.ErrUserNotFound
}
