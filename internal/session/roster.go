package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// AddUser добавляет участника (или заменяет запись с тем же id).
// Появление нового id пересевает статистику с нуля для всего состава.
func (s *Session) AddUser(u domain.User) domain.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = domain.RoleParticipant
	}

	s.mu.Lock()
	if existing := s.findUser(u.ID); existing != nil {
		*existing = u
	} else {
		s.users = append(s.users, u)
		s.reseedStats()
	}
	s.mu.Unlock()
	s.changed()
	return u
}

// RemoveUser убирает участника из состава, живой очереди и статистики.
func (s *Session) RemoveUser(userID string) {
	s.mu.Lock()
	kept := s.users[:0]
	removed := false
	for _, u := range s.users {
		if u.ID == userID {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	s.users = kept
	if removed {
		s.removeFromQueue(userID)
		delete(s.reactionDue, userID)
		if s.currentUserID == userID {
			s.currentUserID = ""
		}
		if s.turn != nil && s.turn.userID == userID {
			s.turn = nil
		}
		s.reseedStats()
		// если ушёл активный спикер — очередь может продвинуться
		s.promote()
	}
	s.mu.Unlock()
	s.changed()
}

// SetCurrentUser назначает «локального» пользователя сессии — того, кому
// показывается приглашение «ваша очередь говорить».
func (s *Session) SetCurrentUser(userID string) error {
	s.mu.Lock()
	if s.findUser(userID) == nil {
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	s.currentUserID = userID
	s.mu.Unlock()
	s.changed()
	return nil
}

// UpdateUser заменяет запись участника целиком (настройки профиля).
func (s *Session) UpdateUser(u domain.User) error {
	s.mu.Lock()
	existing := s.findUser(u.ID)
	if existing == nil {
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	*existing = u
	s.mu.Unlock()
	s.changed()
	return nil
}

func (s *Session) ToggleMute(userID string) {
	s.mu.Lock()
	if u := s.findUser(userID); u != nil {
		u.IsMuted = !u.IsMuted
	} else {
		s.logDebug("toggle mute: unknown user", "user", userID)
	}
	s.mu.Unlock()
	s.changed()
}

func (s *Session) ToggleVideo(userID string) {
	s.mu.Lock()
	if u := s.findUser(userID); u != nil {
		u.IsVideoOn = !u.IsVideoOn
	} else {
		s.logDebug("toggle video: unknown user", "user", userID)
	}
	s.mu.Unlock()
	s.changed()
}

// ToggleHandRaise переключает поднятую руку. Поднятие видно хосту:
// если текущий пользователь сессии — хост и руку поднял не он сам,
// публикуется broadcast-уведомление.
func (s *Session) ToggleHandRaise(userID string) {
	s.mu.Lock()
	if u := s.findUser(userID); u != nil {
		u.IsHandRaised = !u.IsHandRaised
		if u.IsHandRaised {
			if cur := s.findUser(s.currentUserID); cur != nil && cur.Role == domain.RoleHost && cur.ID != userID {
				s.publish(domain.NotificationInfo,
					fmt.Sprintf("%s raised their hand", u.Name), "", noticeHandRaiseMS)
			}
		}
	} else {
		s.logDebug("toggle hand raise: unknown user", "user", userID)
	}
	s.mu.Unlock()
	s.changed()
}

// ToggleScreenSharing включает/выключает шаринг экрана. Инвариант
// эксклюзивности держится внутри операции: включение для одного
// выключает всех остальных, выключение других не трогает.
func (s *Session) ToggleScreenSharing(userID string) {
	s.mu.Lock()
	if u := s.findUser(userID); u != nil {
		wasSharing := u.IsScreenSharing
		u.IsScreenSharing = !wasSharing
		if !wasSharing {
			for i := range s.users {
				if s.users[i].ID != userID {
					s.users[i].IsScreenSharing = false
				}
			}
		}
	} else {
		s.logDebug("toggle screen sharing: unknown user", "user", userID)
	}
	s.mu.Unlock()
	s.changed()
}

// SetReaction ставит реакцию с авто-сбросом через ReactionTTL.
// Перезапись сдвигает дедлайн, пустая реакция снимает его.
func (s *Session) SetReaction(userID string, r domain.Reaction) {
	s.mu.Lock()
	if u := s.findUser(userID); u != nil {
		u.Reaction = r
		if r != "" {
			s.reactionDue[userID] = s.clock.Now().Add(s.cfg.ReactionTTL)
		} else {
			delete(s.reactionDue, userID)
		}
	} else {
		s.logDebug("set reaction: unknown user", "user", userID)
	}
	s.mu.Unlock()
	s.changed()
}
