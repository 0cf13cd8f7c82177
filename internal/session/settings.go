package session

import "time"

type Settings struct {
	// ReactionTTL — через сколько реакция сбрасывается сама.
	ReactionTTL time.Duration
	// TurnCountdown — секунды до авто-скипа приглашения «ваша очередь».
	TurnCountdown int
}

func (s Settings) withDefaults() Settings {
	if s.ReactionTTL <= 0 {
		s.ReactionTTL = 5 * time.Second
	}
	if s.TurnCountdown <= 0 {
		s.TurnCountdown = 10
	}
	return s
}
