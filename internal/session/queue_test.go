package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

func TestJoinQueue_PromotesHeadWhenNobodySpeaks(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.JoinQueue("u1", "")

	u1, _ := s.User("u1")
	assert.True(t, u1.IsSpeaking)
	assert.Empty(t, s.Queue(), "promoted head leaves the queue")

	stats := s.Stats()
	assert.Equal(t, 1, stats[0].SpeakingInstances)
}

func TestJoinQueue_WaitsWhileSomeoneSpeaks(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")

	u2, _ := s.User("u2")
	assert.False(t, u2.IsSpeaking)
	q := s.Queue()
	require.Len(t, q, 1)
	assert.Equal(t, "u2", q[0].UserID)
}

func TestJoinQueue_DuplicateIsIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")
	s.JoinQueue("u2", "")

	assert.Len(t, s.Queue(), 1)
}

func TestJoinQueue_SpeakerRejoinFastPath(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")

	s.JoinQueue("u1", "")
	u1, _ := s.User("u1")
	require.True(t, u1.IsSpeaking)

	// активный спикер снова встаёт в очередь: остаётся спикером,
	// очередь не растёт, выступление засчитывается ещё раз
	s.JoinQueue("u1", "")

	u1, _ = s.User("u1")
	assert.True(t, u1.IsSpeaking)
	assert.Empty(t, s.Queue())
	assert.Equal(t, 2, s.Stats()[0].SpeakingInstances)
}

func TestPromote_SpeakerIsExclusive(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")
	s.SkipTurn("u1") // u1 остаётся спикером: скип статус не отзывает
	s.RemoveUser("u1")

	u2, _ := s.User("u2")
	assert.True(t, u2.IsSpeaking)
	for _, u := range s.Users() {
		if u.ID != "u2" {
			assert.False(t, u.IsSpeaking)
		}
	}
}

func TestPromote_DropsUnknownHeads(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.JoinQueue("u1", "")
	s.JoinQueue("ghost", "") // в очереди, но не в составе
	s.JoinQueue("u2", "")

	s.RemoveUser("u1")

	// ghost отброшен, промоушен дошёл до u2
	u2, _ := s.User("u2")
	assert.True(t, u2.IsSpeaking)
	assert.Empty(t, s.Queue())
}

func TestSkipTurn_RemovesFromQueueKeepsSpeaker(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")
	s.SkipTurn("u2")

	assert.Empty(t, s.Queue())
	u1, _ := s.User("u1")
	assert.True(t, u1.IsSpeaking)
}

func TestAnnounceTurn_CurrentUserGetsPromptOthersGetNotification(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	require.NoError(t, s.SetCurrentUser("u1"))

	// чужой промоушен — адресное уведомление, без приглашения
	s.JoinQueue("u2", "")
	pending, _ := s.TurnPending()
	assert.False(t, pending)

	var msgs []string
	for _, n := range s.NotificationsFor("u2") {
		msgs = append(msgs, n.Message)
	}
	assert.Contains(t, msgs, "It's Bob's turn to speak")

	// свой промоушен — блокирующее приглашение, уведомления нет
	s.JoinQueue("u1", "")
	s.RemoveUser("u2")
	pending, remaining := s.TurnPending()
	assert.True(t, pending)
	assert.Equal(t, 10, remaining)
}

func TestDismissTurn_KeepsQueueIntact(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	require.NoError(t, s.SetCurrentUser("u2"))

	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")
	s.RemoveUser("u1")

	pending, _ := s.TurnPending()
	require.True(t, pending)

	s.DismissTurn()
	pending, _ = s.TurnPending()
	assert.False(t, pending)

	// u2 уже был промоутнут и остаётся спикером
	u2, _ := s.User("u2")
	assert.True(t, u2.IsSpeaking)
}

func TestDeclineTurn_RemovesFromQueueAndPromotesNext(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	require.NoError(t, s.SetCurrentUser("u1"))

	s.JoinQueue("u1", "")
	pending, _ := s.TurnPending()
	require.True(t, pending)

	s.DeclineTurn()
	pending, _ = s.TurnPending()
	assert.False(t, pending)
	assert.Empty(t, s.Queue())
}

func TestPromotion_StrictFIFO(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "a", "Alice")
	addUser(t, s, "b", "Bob")
	addUser(t, s, "c", "Carol")

	s.JoinQueue("a", "")
	s.JoinQueue("b", "")
	s.JoinQueue("c", "")

	ua, _ := s.User("a")
	require.True(t, ua.IsSpeaking)

	s.RemoveUser("a")
	ub, _ := s.User("b")
	assert.True(t, ub.IsSpeaking)
	require.Len(t, s.Queue(), 1)
	assert.Equal(t, "c", s.Queue()[0].UserID)
}

func TestJoinQueue_FirstInEmptyQueueWarning(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	require.NoError(t, s.SetCurrentUser("u1"))

	s.JoinQueue("u2", "")

	var msgs []string
	for _, n := range s.NotificationsFor("u2") {
		msgs = append(msgs, n.Message)
	}
	assert.Contains(t, msgs, "Bob is next to speak")

	// текущий пользователь предупреждения о себе не получает
	s.JoinQueue("u1", "")
	for _, n := range s.NotificationsFor("u1") {
		assert.NotEqual(t, "Alice is next to speak", n.Message)
	}
}

func TestQueue_ReturnsCopy(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")

	q := s.Queue()
	require.Len(t, q, 1)
	q[0].UserID = "mallory"

	assert.Equal(t, "u2", s.Queue()[0].UserID)
}

func TestJoinQueue_PublishesScopedNotification(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")

	var forU2 []domain.Notification
	for _, n := range s.NotificationsFor("u2") {
		if n.Message == "You've been added to the speaking queue" {
			forU2 = append(forU2, n)
		}
	}
	require.Len(t, forU2, 1)
	assert.Equal(t, "u2", forU2[0].UserID)
	assert.True(t, forU2[0].AutoHide)
	assert.Equal(t, 3000, forU2[0].Duration)
}
