package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

// AddAgendaItem добавляет пункт повестки в конец списка.
func (s *Session) AddAgendaItem(title string, duration int, speaker string, speakingQueue []string) domain.AgendaItem {
	item := domain.AgendaItem{
		ID:            uuid.NewString(),
		Title:         title,
		Duration:      duration,
		Speaker:       speaker,
		SpeakingQueue: append([]string(nil), speakingQueue...),
	}
	s.mu.Lock()
	s.agenda = append(s.agenda, item)
	s.mu.Unlock()
	s.changed()
	return item
}

func (s *Session) RemoveAgendaItem(itemID string) error {
	s.mu.Lock()
	kept := s.agenda[:0]
	found := false
	for _, it := range s.agenda {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	s.agenda = kept
	s.mu.Unlock()
	if !found {
		return domain.ErrAgendaItemNotFound
	}
	s.changed()
	return nil
}

func (s *Session) ToggleAgendaItemCompleted(itemID string) error {
	s.mu.Lock()
	item := s.findAgendaItem(itemID)
	if item == nil {
		s.mu.Unlock()
		return domain.ErrAgendaItemNotFound
	}
	item.Completed = !item.Completed
	s.mu.Unlock()
	s.changed()
	return nil
}

// SetAgendaSpeakingQueue задаёт шаблонный порядок спикеров пункта.
// Живую очередь не трогает.
func (s *Session) SetAgendaSpeakingQueue(itemID string, userIDs []string) error {
	s.mu.Lock()
	item := s.findAgendaItem(itemID)
	if item == nil {
		s.mu.Unlock()
		return domain.ErrAgendaItemNotFound
	}
	item.SpeakingQueue = append([]string(nil), userIDs...)
	s.mu.Unlock()
	s.changed()
	return nil
}

// StartAgendaItemSpeakingQueue атомарно заменяет живую очередь шаблоном
// пункта повестки. RequestTime элементов раздвигается на +index секунд —
// это только для стабильной сортировки и отладки, обработку не задерживает.
func (s *Session) StartAgendaItemSpeakingQueue(itemID string) error {
	s.mu.Lock()
	item := s.findAgendaItem(itemID)
	if item == nil {
		s.mu.Unlock()
		return domain.ErrAgendaItemNotFound
	}
	if len(item.SpeakingQueue) == 0 {
		s.mu.Unlock()
		return nil
	}

	now := s.clock.Now()
	s.queue = s.queue[:0]
	for i, uid := range item.SpeakingQueue {
		s.queue = append(s.queue, domain.SpeakingQueueItem{
			ID:           uuid.NewString(),
			UserID:       uid,
			RequestTime:  now.Add(time.Duration(i) * time.Second),
			AgendaItemID: item.ID,
		})
	}

	if first := s.findUser(item.SpeakingQueue[0]); first != nil {
		s.publish(domain.NotificationWarning,
			fmt.Sprintf("%s is next to speak for %q", first.Name, item.Title),
			first.ID, noticeNextSpeakerMS)
	}
	s.promote()
	s.mu.Unlock()
	s.changed()
	return nil
}

// Agenda возвращает копию повестки.
func (s *Session) Agenda() []domain.AgendaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AgendaItem, len(s.agenda))
	copy(out, s.agenda)
	return out
}

func (s *Session) findAgendaItem(id string) *domain.AgendaItem {
	for i := range s.agenda {
		if s.agenda[i].ID == id {
			return &s.agenda[i]
		}
	}
	return nil
}
