package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// Длительности авто-скрытия уведомлений, ms.
const (
	noticeQueueJoinMS   = 3000
	noticeHandRaiseMS   = 5000
	noticeTimerEndMS    = 5000
	noticeNextSpeakerMS = 7000
	noticeTurnMS        = 10000
)

// notice — уведомление вместе с дедлайном авто-скрытия.
// Нулевой expiresAt значит «висит до явного dismiss».
type notice struct {
	domain.Notification
	expiresAt time.Time
}

// publish (под mu): присваивает id и ставит дедлайн авто-скрытия.
// durationMS <= 0 — уведомление не исчезает само.
func (s *Session) publish(typ domain.NotificationType, message, userID string, durationMS int) {
	n := notice{
		Notification: domain.Notification{
			ID:      uuid.NewString(),
			Type:    typ,
			Message: message,
			UserID:  userID,
		},
	}
	if durationMS > 0 {
		n.AutoHide = true
		n.Duration = durationMS
		n.expiresAt = s.clock.Now().Add(time.Duration(durationMS) * time.Millisecond)
	}
	s.notifications = append(s.notifications, n)
}

// Publish добавляет произвольное уведомление извне (advisory-канал
// презентационного слоя). Id назначается здесь.
func (s *Session) Publish(n domain.Notification) domain.Notification {
	s.mu.Lock()
	s.publish(n.Type, n.Message, n.UserID, n.Duration)
	published := s.notifications[len(s.notifications)-1].Notification
	s.mu.Unlock()
	s.changed()
	return published
}

// DismissNotification убирает уведомление; неизвестный id — no-op.
func (s *Session) DismissNotification(id string) {
	s.mu.Lock()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
	s.mu.Unlock()
	s.changed()
}

// NotificationsFor — видимые пользователю уведомления:
// broadcast плюс адресованные именно ему.
func (s *Session) NotificationsFor(userID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.VisibleTo(userID) {
			out = append(out, n.Notification)
		}
	}
	return out
}
