package domain

import "errors"

var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrUserNotFound       = errors.New("user not in the meeting")
	ErrAgendaItemNotFound = errors.New("agenda item not found")
	ErrNoTimer            = errors.New("no timer is set")
	ErrHistoryDisabled    = errors.New("meeting history is disabled")
)
