package ws

import (
	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/session"
)

// Типы событий WS
const (
	TypeState = "state" // полный снапшот встречи + уведомления адресата

	// клиент -> сервер
	TypeReaction            = "reaction"             // поставить/снять реакцию
	TypeDismissNotification = "dismiss_notification" // закрыть уведомление
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatePayload struct {
	MeetingID       string             `json:"meeting_id"`
	Users           []UserItem         `json:"users"`
	CurrentUserID   string             `json:"current_user_id,omitempty"`
	ActiveSpeakerID string             `json:"active_speaker_id,omitempty"`
	Agenda          []AgendaItem       `json:"agenda"`
	Queue           []QueueItem        `json:"queue"`
	Timer           *TimerItem         `json:"timer,omitempty"`
	Stats           []StatsItem        `json:"stats"`
	TurnPending     bool               `json:"turn_pending"`
	TurnRemaining   int                `json:"turn_remaining,omitempty"`
	Notifications   []NotificationItem `json:"notifications"`
}

type UserItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	IsSpeaking      bool   `json:"is_speaking"`
	IsMuted         bool   `json:"is_muted"`
	IsVideoOn       bool   `json:"is_video_on"`
	IsScreenSharing bool   `json:"is_screen_sharing"`
	IsHandRaised    bool   `json:"is_hand_raised"`
	Reaction        string `json:"reaction,omitempty"`
}

type AgendaItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	DurationMin   int      `json:"duration_min"`
	Speaker       string   `json:"speaker,omitempty"`
	Completed     bool     `json:"completed"`
	SpeakingQueue []string `json:"speaking_queue,omitempty"`
}

type QueueItem struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	RequestTime  int64  `json:"request_time_unix"`
	AgendaItemID string `json:"agenda_item_id,omitempty"`
}

type TimerItem struct {
	ID           string `json:"id"`
	DurationSec  int    `json:"duration_sec"`
	RemainingSec int    `json:"remaining_sec"`
	IsRunning    bool   `json:"is_running"`
	AgendaItemID string `json:"agenda_item_id,omitempty"`
	SpeakerID    string `json:"speaker_id,omitempty"`
}

type StatsItem struct {
	UserID            string `json:"user_id"`
	TotalTimeSec      int    `json:"total_time_sec"`
	SpeakingInstances int    `json:"speaking_instances"`
}

type NotificationItem struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	UserID     string `json:"user_id,omitempty"`
	AutoHide   bool   `json:"auto_hide"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

type ReactionPayload struct {
	Reaction string `json:"reaction"` // пустая строка снимает реакцию
}

type DismissNotificationPayload struct {
	ID string `json:"id"`
}

func newStatePayload(snap session.Snapshot, notifications []domain.Notification) StatePayload {
	p := StatePayload{
		MeetingID:       snap.MeetingID,
		CurrentUserID:   snap.CurrentUserID,
		ActiveSpeakerID: snap.ActiveSpeakerID,
		Users:           make([]UserItem, 0, len(snap.Users)),
		Agenda:          make([]AgendaItem, 0, len(snap.Agenda)),
		Queue:           make([]QueueItem, 0, len(snap.Queue)),
		Stats:           make([]StatsItem, 0, len(snap.Stats)),
		TurnPending:     snap.TurnPending,
		TurnRemaining:   snap.TurnRemaining,
		Notifications:   make([]NotificationItem, 0, len(notifications)),
	}
	for _, u := range snap.Users {
		p.Users = append(p.Users, UserItem{
			ID:              u.ID,
			Name:            u.Name,
			Role:            string(u.Role),
			IsSpeaking:      u.IsSpeaking,
			IsMuted:         u.IsMuted,
			IsVideoOn:       u.IsVideoOn,
			IsScreenSharing: u.IsScreenSharing,
			IsHandRaised:    u.IsHandRaised,
			Reaction:        string(u.Reaction),
		})
	}
	for _, a := range snap.Agenda {
		p.Agenda = append(p.Agenda, AgendaItem{
			ID:            a.ID,
			Title:         a.Title,
			DurationMin:   a.Duration,
			Speaker:       a.Speaker,
			Completed:     a.Completed,
			SpeakingQueue: a.SpeakingQueue,
		})
	}
	for _, q := range snap.Queue {
		p.Queue = append(p.Queue, QueueItem{
			ID:           q.ID,
			UserID:       q.UserID,
			RequestTime:  q.RequestTime.Unix(),
			AgendaItemID: q.AgendaItemID,
		})
	}
	if t := snap.Timer; t != nil {
		p.Timer = &TimerItem{
			ID:           t.ID,
			DurationSec:  t.Duration,
			RemainingSec: t.Remaining,
			IsRunning:    t.IsRunning,
			AgendaItemID: t.AgendaItemID,
			SpeakerID:    t.SpeakerID,
		}
	}
	for _, st := range snap.Stats {
		p.Stats = append(p.Stats, StatsItem{
			UserID:            st.UserID,
			TotalTimeSec:      st.TotalTime,
			SpeakingInstances: st.SpeakingInstances,
		})
	}
	for _, n := range notifications {
		p.Notifications = append(p.Notifications, NotificationItem{
			ID:         n.ID,
			Type:       string(n.Type),
			Message:    n.Message,
			UserID:     n.UserID,
			AutoHide:   n.AutoHide,
			DurationMS: n.Duration,
		})
	}
	return p
}
