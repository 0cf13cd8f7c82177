package session

import "time"

// Clock — источник времени сессии. Все дедлайны (реакции, авто-скрытие
// уведомлений, авто-скип очереди) сверяются с ним на каждом тике,
// поэтому в тестах время подменяется целиком.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
