package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateMeetingRequest struct {
	ID string `json:"id,omitempty"`
}

type MeetingCreatedResponse struct {
	MeetingID string `json:"meeting_id"`
}

type AddUserRequest struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	IsMuted      bool   `json:"is_muted,omitempty"`
	IsVideoOn    bool   `json:"is_video_on,omitempty"`
	IsHandRaised bool   `json:"is_hand_raised,omitempty"`
}

type UpdateUserRequest struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	IsMuted         bool   `json:"is_muted"`
	IsVideoOn       bool   `json:"is_video_on"`
	IsScreenSharing bool   `json:"is_screen_sharing"`
	IsHandRaised    bool   `json:"is_hand_raised"`
	Reaction        string `json:"reaction,omitempty"`
}

type SetCurrentUserRequest struct {
	UserID string `json:"user_id"`
}

type SetReactionRequest struct {
	Reaction string `json:"reaction"` // пустая строка снимает реакцию
}

type JoinQueueRequest struct {
	UserID       string `json:"user_id"`
	AgendaItemID string `json:"agenda_item_id,omitempty"`
}

type SkipTurnRequest struct {
	UserID string `json:"user_id"`
}

type StartTimerRequest struct {
	DurationSec  int    `json:"duration_sec"`
	AgendaItemID string `json:"agenda_item_id,omitempty"`
	SpeakerID    string `json:"speaker_id,omitempty"`
}

type AddAgendaItemRequest struct {
	Title         string   `json:"title"`
	DurationMin   int      `json:"duration_min"`
	Speaker       string   `json:"speaker,omitempty"`
	SpeakingQueue []string `json:"speaking_queue,omitempty"`
}

type SetAgendaQueueRequest struct {
	UserIDs []string `json:"user_ids"`
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

type AgendaItemResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	DurationMin   int      `json:"duration_min"`
	Speaker       string   `json:"speaker,omitempty"`
	Completed     bool     `json:"completed"`
	SpeakingQueue []string `json:"speaking_queue,omitempty"`
}

type QueueItemResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RequestTime  time.Time `json:"request_time"`
	AgendaItemID string    `json:"agenda_item_id,omitempty"`
}

type TimerResponse struct {
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

type StateResponse struct {
	MeetingID       string               `json:"meeting_id"`
	Users           []UserItem           `json:"users"`
	CurrentUserID   string               `json:"current_user_id,omitempty"`
	ActiveSpeakerID string               `json:"active_speaker_id,omitempty"`
	Agenda          []AgendaItemResponse `json:"agenda"`
	Queue           []QueueItemResponse  `json:"queue"`
	Timer           *TimerResponse       `json:"timer,omitempty"`
	Stats           []StatsItem          `json:"stats"`
	TurnPending     bool                 `json:"turn_pending"`
	TurnRemaining   int                  `json:"turn_remaining,omitempty"`
	Notifications   []NotificationItem   `json:"notifications"`
}

type HistoryItem struct {
	ID           string      `json:"id"`
	Date         time.Time   `json:"date"`
	Participants []string    `json:"participants"`
	Stats        []StatsItem `json:"stats"`
	DurationMin  int         `json:"duration_min"`
}

type HistoryListResponse struct {
	Items      []HistoryItem `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
