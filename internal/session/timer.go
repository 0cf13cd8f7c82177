package session

import (
	"github.com/google/uuid"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// StartTimer создаёт (или перезаписывает) таймер и запускает его.
// Неположительная длительность зажимается в ноль: таймер рождается
// уже истёкшим и сразу публикует уведомление об окончании.
func (s *Session) StartTimer(duration int, agendaItemID, speakerID string) domain.Timer {
	if duration < 0 {
		duration = 0
	}

	s.mu.Lock()
	t := &domain.Timer{
		ID:           uuid.NewString(),
		Duration:     duration,
		Remaining:    duration,
		IsRunning:    duration > 0,
		AgendaItemID: agendaItemID,
		SpeakerID:    speakerID,
	}
	s.timer = t
	if duration == 0 {
		s.publish(domain.NotificationInfo, "Timer has ended", "", noticeTimerEndMS)
	}
	out := *t
	s.mu.Unlock()
	s.changed()
	return out
}

// PauseTimer останавливает отсчёт, remaining сохраняется.
func (s *Session) PauseTimer() error {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return domain.ErrNoTimer
	}
	s.timer.IsRunning = false
	s.mu.Unlock()
	s.changed()
	return nil
}

// ResumeTimer продолжает отсчёт с текущего remaining; duration не трогает.
func (s *Session) ResumeTimer() error {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return domain.ErrNoTimer
	}
	if !s.timer.Expired() {
		s.timer.IsRunning = true
	}
	s.mu.Unlock()
	s.changed()
	return nil
}

// ResetTimer возвращает remaining к исходной длительности и останавливает.
func (s *Session) ResetTimer() error {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return domain.ErrNoTimer
	}
	s.timer.Remaining = s.timer.Duration
	s.timer.IsRunning = false
	s.mu.Unlock()
	s.changed()
	return nil
}

// ClearTimer убирает таймер совсем — только по явному действию UI,
// сам по истечении таймер не удаляется.
func (s *Session) ClearTimer() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()
	s.changed()
}

// Timer возвращает копию таймера или nil.
func (s *Session) Timer() *domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return nil
	}
	t := *s.timer
	return &t
}
