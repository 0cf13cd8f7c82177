package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

func TestAddUser_AssignsIDAndDefaultRole(t *testing.T) {
	s, _ := newTestSession(t)

	u := s.AddUser(domain.User{Name: "Alice"})
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleParticipant, u.Role)
}

func TestAddUser_SameIDReplacesRecord(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	s.AddUser(domain.User{ID: "u1", Name: "Alicia", Role: domain.RoleHost})

	require.Len(t, s.Users(), 1)
	u, _ := s.User("u1")
	assert.Equal(t, "Alicia", u.Name)
	assert.Equal(t, domain.RoleHost, u.Role)
}

func TestAddUser_NewUserReseedsStats(t *testing.T) {
	s, clock := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	s.JoinQueue("u1", "")
	tick(s, clock, 3)

	addUser(t, s, "u2", "Bob")

	for _, st := range s.Stats() {
		assert.Equal(t, 0, st.TotalTime)
		assert.Equal(t, 0, st.SpeakingInstances)
	}
}

func TestRemoveUser_CleansUpEverywhere(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	require.NoError(t, s.SetCurrentUser("u1"))
	s.SetReaction("u1", domain.ReactionClap)
	s.JoinQueue("u1", "")
	s.JoinQueue("u2", "")

	s.RemoveUser("u1")

	users := s.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].ID)
	// ушёл активный спикер — очередь продвинулась
	assert.True(t, users[0].IsSpeaking)
	assert.Empty(t, s.Queue())

	snap := s.Snapshot()
	assert.Empty(t, snap.CurrentUserID)
}

func TestRemoveUser_UnknownIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	s.RemoveUser("ghost")
	assert.Len(t, s.Users(), 1)
}

func TestSetCurrentUser_UnknownUser(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.SetCurrentUser("ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestToggleMute(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")

	s.ToggleMute("u1")
	u, _ := s.User("u1")
	assert.True(t, u.IsMuted)

	s.ToggleMute("u1")
	u, _ = s.User("u1")
	assert.False(t, u.IsMuted)
}

func TestToggleHandRaise_NotifiesHost(t *testing.T) {
	s, _ := newTestSession(t)
	s.AddUser(domain.User{ID: "host", Name: "Helen", Role: domain.RoleHost})
	addUser(t, s, "u1", "Alice")
	require.NoError(t, s.SetCurrentUser("host"))

	s.ToggleHandRaise("u1")

	var msgs []string
	for _, n := range s.NotificationsFor("host") {
		msgs = append(msgs, n.Message)
	}
	assert.Contains(t, msgs, "Alice raised their hand")

	// опускание руки не шумит
	s.ToggleHandRaise("u1")
	count := 0
	for _, n := range s.NotificationsFor("host") {
		if n.Message == "Alice raised their hand" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestToggleHandRaise_NoNotificationForNonHost(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")
	require.NoError(t, s.SetCurrentUser("u2"))

	s.ToggleHandRaise("u1")

	u, _ := s.User("u1")
	assert.True(t, u.IsHandRaised)
	assert.Empty(t, s.NotificationsFor("u2"))
}

func TestToggleScreenSharing_IsExclusive(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")
	addUser(t, s, "u2", "Bob")

	s.ToggleScreenSharing("u1")
	s.ToggleScreenSharing("u2")

	u1, _ := s.User("u1")
	u2, _ := s.User("u2")
	assert.False(t, u1.IsScreenSharing)
	assert.True(t, u2.IsScreenSharing)

	// выключение не трогает других
	s.ToggleScreenSharing("u2")
	u2, _ = s.User("u2")
	assert.False(t, u2.IsScreenSharing)
}

func TestUpdateUser_UnknownUser(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.UpdateUser(domain.User{ID: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
