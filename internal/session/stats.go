package session

import "github.com/cwrk-planet/meeting-service/internal/domain"

// reseedStats (под mu): состав участников сменился — статистика
// пересевается нулями для нового набора id. Грубый сброс, не дозапись.
func (s *Session) reseedStats() {
	fresh := make(map[string]*domain.SpeakingStats, len(s.users))
	for _, u := range s.users {
		fresh[u.ID] = &domain.SpeakingStats{UserID: u.ID}
	}
	s.stats = fresh
}

// bumpInstances (под mu): инкремент числа выступлений; вызывается только
// правилом промоушена, тик сюда не ходит.
func (s *Session) bumpInstances(userID string) {
	if st := s.stats[userID]; st != nil {
		st.SpeakingInstances++
	}
}

// Stats возвращает статистику в порядке состава участников.
func (s *Session) Stats() []domain.SpeakingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Session) statsLocked() []domain.SpeakingStats {
	out := make([]domain.SpeakingStats, 0, len(s.users))
	for _, u := range s.users {
		if st := s.stats[u.ID]; st != nil {
			out = append(out, *st)
		}
	}
	return out
}
