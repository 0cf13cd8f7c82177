package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// JoinQueue ставит участника в конец живой очереди. Повторная постановка
// молча игнорируется (только debug-лог). Активный спикер, вставший в
// очередь сам, обрабатывается сразу же, без ожидания следующего промоушена.
func (s *Session) JoinQueue(userID, agendaItemID string) {
	s.mu.Lock()
	if s.inQueue(userID) {
		s.mu.Unlock()
		s.logDebug("join queue: user already queued, ignoring", "user", userID)
		return
	}

	wasEmpty := len(s.queue) == 0

	s.queue = append(s.queue, domain.SpeakingQueueItem{
		ID:           uuid.NewString(),
		UserID:       userID,
		RequestTime:  s.clock.Now(),
		AgendaItemID: agendaItemID,
	})
	s.publish(domain.NotificationInfo,
		"You've been added to the speaking queue", userID, noticeQueueJoinMS)

	// не текущий пользователь первым встал в пустую очередь — предупреждаем,
	// что он следующий
	if wasEmpty && userID != s.currentUserID {
		if u := s.findUser(userID); u != nil {
			s.publish(domain.NotificationWarning,
				fmt.Sprintf("%s is next to speak", u.Name), userID, noticeNextSpeakerMS)
		}
	}

	if u := s.findUser(userID); u != nil && u.IsSpeaking {
		// fast path: «я уже говорю и снова встал в очередь» —
		// убираем свой элемент, остаёмся спикером, но счётчик выступлений
		// и приглашение срабатывают как при обычном промоушене
		s.removeFromQueue(userID)
		s.bumpInstances(userID)
		s.announceTurn(u)
	} else {
		s.promote()
	}
	s.mu.Unlock()
	s.changed()
}

// SkipTurn убирает все элементы пользователя из очереди и, если ему
// сейчас показано приглашение говорить, закрывает его. Статус активного
// спикера скип не отзывает.
func (s *Session) SkipTurn(userID string) {
	s.mu.Lock()
	s.removeFromQueue(userID)
	if s.turn != nil && s.turn.userID == userID {
		s.turn = nil
	}
	s.promote()
	s.mu.Unlock()
	s.changed()
}

// Queue возвращает копию живой очереди.
func (s *Session) Queue() []domain.SpeakingQueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SpeakingQueueItem, len(s.queue))
	copy(out, s.queue)
	return out
}

// promote — правило промоушена: если очередь непуста и никто не говорит,
// голова очереди становится единственным активным спикером. Головы,
// указывающие на отсутствующих в составе пользователей, отбрасываются.
func (s *Session) promote() {
	for len(s.queue) > 0 {
		if s.activeSpeaker() != nil {
			return
		}
		head := s.queue[0]
		u := s.findUser(head.UserID)
		if u == nil {
			s.queue = s.queue[1:]
			s.logDebug("promote: queue head not in roster, dropping", "user", head.UserID)
			continue
		}
		s.queue = s.queue[1:]
		for i := range s.users {
			s.users[i].IsSpeaking = s.users[i].ID == u.ID
		}
		s.bumpInstances(u.ID)
		s.announceTurn(u)
		return
	}
}

// announceTurn: текущему пользователю — блокирующее приглашение с
// обратным отсчётом, остальным — обычное адресное уведомление.
func (s *Session) announceTurn(u *domain.User) {
	if u.ID == s.currentUserID {
		s.turn = &turnPrompt{userID: u.ID, remaining: s.cfg.TurnCountdown}
		return
	}
	s.publish(domain.NotificationSuccess,
		fmt.Sprintf("It's %s's turn to speak", u.Name), u.ID, noticeTurnMS)
}

func (s *Session) inQueue(userID string) bool {
	for _, it := range s.queue {
		if it.UserID == userID {
			return true
		}
	}
	return false
}

func (s *Session) removeFromQueue(userID string) {
	kept := s.queue[:0]
	for _, it := range s.queue {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	s.queue = kept
}
