package domain

type AgendaItem struct {
	ID        string
	Title     string
	Duration  int // minutes
	Speaker   string
	Completed bool

	// SpeakingQueue — заранее объявленный порядок спикеров (шаблон),
	// не путать с живой очередью сессии.
	SpeakingQueue []string
}
