package http

import (
	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/session"
)

func newUserItem(u domain.User) UserItem {
	return UserItem{
		ID:              u.ID,
		Name:            u.Name,
		Role:            string(u.Role),
		IsSpeaking:      u.IsSpeaking,
		IsMuted:         u.IsMuted,
		IsVideoOn:       u.IsVideoOn,
		IsScreenSharing: u.IsScreenSharing,
		IsHandRaised:    u.IsHandRaised,
		Reaction:        string(u.Reaction),
	}
}

func newAgendaItemResponse(it domain.AgendaItem) AgendaItemResponse {
	return AgendaItemResponse{
		ID:            it.ID,
		Title:         it.Title,
		DurationMin:   it.Duration,
		Speaker:       it.Speaker,
		Completed:     it.Completed,
		SpeakingQueue: it.SpeakingQueue,
	}
}

func newTimerResponse(t *domain.Timer) *TimerResponse {
	if t == nil {
		return nil
	}
	return &TimerResponse{
		ID:           t.ID,
		DurationSec:  t.Duration,
		RemainingSec: t.Remaining,
		IsRunning:    t.IsRunning,
		AgendaItemID: t.AgendaItemID,
		SpeakerID:    t.SpeakerID,
	}
}

func newStateResponse(snap session.Snapshot, notifications []domain.Notification) StateResponse {
	resp := StateResponse{
		MeetingID:       snap.MeetingID,
		CurrentUserID:   snap.CurrentUserID,
		ActiveSpeakerID: snap.ActiveSpeakerID,
		Users:           make([]UserItem, 0, len(snap.Users)),
		Agenda:          make([]AgendaItemResponse, 0, len(snap.Agenda)),
		Queue:           make([]QueueItemResponse, 0, len(snap.Queue)),
		Stats:           make([]StatsItem, 0, len(snap.Stats)),
		Timer:           newTimerResponse(snap.Timer),
		TurnPending:     snap.TurnPending,
		TurnRemaining:   snap.TurnRemaining,
		Notifications:   make([]NotificationItem, 0, len(notifications)),
	}
	for _, u := range snap.Users {
		resp.Users = append(resp.Users, newUserItem(u))
	}
	for _, it := range snap.Agenda {
		resp.Agenda = append(resp.Agenda, newAgendaItemResponse(it))
	}
	for _, q := range snap.Queue {
		resp.Queue = append(resp.Queue, QueueItemResponse{
			ID:           q.ID,
			UserID:       q.UserID,
			RequestTime:  q.RequestTime,
			AgendaItemID: q.AgendaItemID,
		})
	}
	for _, st := range snap.Stats {
		resp.Stats = append(resp.Stats, StatsItem{
			UserID:            st.UserID,
			TotalTimeSec:      st.TotalTime,
			SpeakingInstances: st.SpeakingInstances,
		})
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, NotificationItem{
			ID:         n.ID,
			Type:       string(n.Type),
			Message:    n.Message,
			UserID:     n.UserID,
			AutoHide:   n.AutoHide,
			DurationMS: n.Duration,
		})
	}
	return resp
}
