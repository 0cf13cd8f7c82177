package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

func TestStartTimer_Running(t *testing.T) {
	s, _ := newTestSession(t)

	tm := s.StartTimer(90, "item1", "u1")
	assert.NotEmpty(t, tm.ID)
	assert.Equal(t, 90, tm.Duration)
	assert.Equal(t, 90, tm.Remaining)
	assert.True(t, tm.IsRunning)
	assert.Equal(t, "item1", tm.AgendaItemID)
	assert.Equal(t, "u1", tm.SpeakerID)
}

func TestStartTimer_NonPositiveDurationBornExpired(t *testing.T) {
	s, _ := newTestSession(t)
	addUser(t, s, "u1", "Alice")

	tm := s.StartTimer(-5, "", "")
	assert.Equal(t, 0, tm.Duration)
	assert.Equal(t, 0, tm.Remaining)
	assert.False(t, tm.IsRunning)

	var found bool
	for _, n := range s.NotificationsFor("u1") {
		if n.Message == "Timer has ended" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestStartTimer_OverwritesExisting(t *testing.T) {
	s, clock := newTestSession(t)

	s.StartTimer(60, "", "")
	tick(s, clock, 10)
	tm := s.StartTimer(30, "", "")

	assert.Equal(t, 30, tm.Remaining)
	assert.True(t, tm.IsRunning)
}

func TestPauseResumeTimer(t *testing.T) {
	s, clock := newTestSession(t)

	s.StartTimer(10, "", "")
	tick(s, clock, 3)
	require.NoError(t, s.PauseTimer())

	tick(s, clock, 5)
	tm := s.Timer()
	require.NotNil(t, tm)
	assert.Equal(t, 7, tm.Remaining, "paused timer keeps remaining")

	require.NoError(t, s.ResumeTimer())
	tick(s, clock, 2)
	tm = s.Timer()
	assert.Equal(t, 5, tm.Remaining)
}

func TestResumeTimer_ExpiredStaysStopped(t *testing.T) {
	s, clock := newTestSession(t)

	s.StartTimer(1, "", "")
	tick(s, clock, 1)

	require.NoError(t, s.ResumeTimer())
	tm := s.Timer()
	require.NotNil(t, tm)
	assert.False(t, tm.IsRunning)
}

func TestResetTimer(t *testing.T) {
	s, clock := newTestSession(t)

	s.StartTimer(10, "", "")
	tick(s, clock, 4)
	require.NoError(t, s.ResetTimer())

	tm := s.Timer()
	require.NotNil(t, tm)
	assert.Equal(t, 10, tm.Remaining)
	assert.False(t, tm.IsRunning)
}

func TestTimerOps_NoTimer(t *testing.T) {
	s, _ := newTestSession(t)

	assert.ErrorIs(t, s.PauseTimer(), domain.ErrNoTimer)
	assert.ErrorIs(t, s.ResumeTimer(), domain.ErrNoTimer)
	assert.ErrorIs(t, s.ResetTimer(), domain.ErrNoTimer)
}

func TestClearTimer(t *testing.T) {
	s, _ := newTestSession(t)

	s.StartTimer(10, "", "")
	s.ClearTimer()
	assert.Nil(t, s.Timer())
}
