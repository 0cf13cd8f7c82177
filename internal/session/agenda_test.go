package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

func TestAddAgendaItem(t *testing.T) {
	s, _ := newTestSession(t)

	item := s.AddAgendaItem("Planning", 15, "Alice", []string{"u1", "u2"})
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Planning", item.Title)
	assert.Equal(t, 15, item.Duration)
	assert.False(t, item.Completed)

	agenda := s.Agenda()
	require.Len(t, agenda, 1)
	assert.Equal(t, item.ID, agenda[0].ID)
}

func TestRemoveAgendaItem(t *testing.T) {
	s, _ := newTestSession(t)
	item := s.AddAgendaItem("Planning", 15, "", nil)

	require.NoError(t, s.RemoveAgendaItem(item.ID))
	assert.Empty(t, s.Agenda())

	assert.ErrorIs(t, s.RemoveAgendaItem(item.ID), domain.ErrAgendaItemNotFound)
}

func TestToggleAgendaItemCompleted(t *testing.T) {
	s, _ := newTestSession(t)
	item := s.AddAgendaItem("Planning", 15, "", nil)

	require.NoError(t, s.ToggleAgendaItemCompleted(item.ID))
	assert.True(t, s.Agenda()[0].Completed)

	require.NoError(t, s.ToggleAgendaItemCompleted(item.ID))
	assert.False(t, s.Agenda()[0].Completed)

	assert.ErrorIs(t, s.ToggleAgendaItemCompleted("ghost"), domain.ErrAgendaItemNotFound)
}

func TestSetAgendaSpeakingQueue_DoesNotTouchLiveQueue(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	item := s.AddAgendaItem("Planning", 15, "", nil)

	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")

	require.NoError(t, s.SetAgendaSpeakingQueue(item.ID, []string{"u2", "u1"}))
	assert.Equal(t, []string{"u2", "u1"}, s.Agenda()[0].SpeakingQueue)
	require.Len(t, s.Queue(), 1)
	assert.Equal(t, "u2", s.Queue()[0].UserID)
}

func TestStartAgendaItemSpeakingQueue_ReplacesLiveQueue(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	addUser(t, s, "u3", "Carol")
	item := s.AddAgendaItem("Planning", 15, "", []string{"u2", "u3"})

	// в живой очереди уже кто-то ждёт — шаблон его вытесняет
	s.JoinQueue("u1", "")
	require.NoError(t, s.StartAgendaItemSpeakingQueue(item.ID))

	// u1 всё ещё говорит, голова шаблона ждёт промоушена
	u1, _ := s.User("u1")
	assert.True(t, u1.IsSpeaking)
	q := s.Queue()
	require.Len(t, q, 2)
	assert.Equal(t, "u2", q[0].UserID)
	assert.Equal(t, "u3", q[1].UserID)
	assert.Equal(t, item.ID, q[0].AgendaItemID)

	var msgs []string
	for _, n := range s.NotificationsFor("u2") {
		msgs = append(msgs, n.Message)
	}
	assert.Contains(t, msgs, `Bob is next to speak for "Planning"`)
}

func TestStartAgendaItemSpeakingQueue_PromotesWhenIdle(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	item := s.AddAgendaItem("Planning", 15, "", []string{"u1", "u2"})

	require.NoError(t, s.StartAgendaItemSpeakingQueue(item.ID))

	u1, _ := s.User("u1")
	assert.True(t, u1.IsSpeaking)
	require.Len(t, s.Queue(), 1)
	assert.Equal(t, "u2", s.Queue()[0].UserID)
}

func TestStartAgendaItemSpeakingQueue_EmptyTemplateIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	item := s.AddAgendaItem("Planning", 15, "", nil)
	s.JoinQueue("u1", "")
	s.JoinQueue("ghost", "")

	require.NoError(t, s.StartAgendaItemSpeakingQueue(item.ID))
	assert.Len(t, s.Queue(), 1, "live queue untouched by empty template")
}

func TestStartAgendaItemSpeakingQueue_UnknownItem(t *testing.T) {
	s, _ := newTestSession(t)
	assert.ErrorIs(t, s.StartAgendaItemSpeakingQueue("ghost"), domain.ErrAgendaItemNotFound)
}
