package domain

import "time"

type SpeakingQueueItem struct {
	ID           string
	UserID       string
	RequestTime  time.Time
	AgendaItemID string
}
