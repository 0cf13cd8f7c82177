package domain

type Timer struct {
	ID           string
	Duration     int // seconds, неизменяемая исходная длительность
	Remaining    int // seconds, 0 <= Remaining <= Duration
	IsRunning    bool
	AgendaItemID string
	SpeakerID    string
}

// Expired — remaining дошёл до нуля и таймер остановился сам.
func (t *Timer) Expired() bool {
	return t != nil && t.Remaining == 0 && !t.IsRunning
}
