package session

// turnPrompt — приглашение «ваша очередь говорить» для текущего
// пользователя сессии. Пока pending, каждый тик уменьшает remaining;
// ноль эквивалентен скипу.
type turnPrompt struct {
	userID    string
	remaining int
}

// TurnPending сообщает, висит ли приглашение, и сколько секунд осталось
// до авто-скипа.
func (s *Session) TurnPending() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.turn == nil {
		return false, 0
	}
	return true, s.turn.remaining
}

// DismissTurn закрывает приглашение без изменения очереди и статуса
// спикера (путь «размьютиться и говорить»; сам unmute — отдельный интент).
func (s *Session) DismissTurn() {
	s.mu.Lock()
	s.turn = nil
	s.mu.Unlock()
	s.changed()
}

// DeclineTurn — явный скип из приглашения: убирает пользователя из
// очереди (если он там есть) и закрывает приглашение. Статус активного
// спикера не отзывается.
func (s *Session) DeclineTurn() {
	s.mu.Lock()
	if s.turn != nil {
		userID := s.turn.userID
		s.turn = nil
		s.removeFromQueue(userID)
		s.promote()
	}
	s.mu.Unlock()
	s.changed()
}
