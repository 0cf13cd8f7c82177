package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	UserID() string
	MeetingID() string
}

type Hub struct {
	mu       sync.RWMutex
	meetings map[string]map[Conn]struct{} // meetingID -> set of connections
}

func NewHub() *Hub {
	return &Hub{meetings: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ms, ok := h.meetings[c.MeetingID()]
	if !ok {
		ms = make(map[Conn]struct{})
		h.meetings[c.MeetingID()] = ms
	}
	ms[c] = struct{}{}
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ms, ok := h.meetings[c.MeetingID()]; ok {
		delete(ms, c)
		if len(ms) == 0 {
			delete(h.meetings, c.MeetingID())
		}
	}
}

func (h *Hub) Broadcast(meetingID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ms, ok := h.meetings[meetingID]; ok {
		for c := range ms {
			_ = c.Send(msg) // best-effort
		}
	}
}

// ForEach обходит соединения встречи; нужен для адресных payload-ов
// (уведомления фильтруются по пользователю соединения).
func (h *Hub) ForEach(meetingID string, fn func(Conn)) {
	h.mu.RLock()
	conns := make([]Conn, 0)
	if ms, ok := h.meetings[meetingID]; ok {
		for c := range ms {
			conns = append(conns, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range conns {
		fn(c)
	}
}
