package domain

import "time"

// HistoricalMeeting — неизменяемая запись прошедшей встречи, вход для отчётов.
type HistoricalMeeting struct {
	ID            string          `db:"id"`
	Date          time.Time       `db:"date"`
	Participants  []string        `db:"participants"`
	SpeakingStats []SpeakingStats `db:"speaking_stats"`
	Duration      int             `db:"duration"` // minutes
}
