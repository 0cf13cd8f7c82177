package domain

type SpeakingStats struct {
	UserID            string `json:"user_id"`
	TotalTime         int    `json:"total_time"` // seconds
	SpeakingInstances int    `json:"speaking_instances"`
}
