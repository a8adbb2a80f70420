package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusConfirmed  SessionStatus = "confirmed"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled:  {SessionStatusConfirmed, SessionStatusInProgress, SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusConfirmed:  {SessionStatusInProgress, SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusInProgress: {SessionStatusCompleted, SessionStatusCancelled},
}

// CanTransition reports whether a session may move from s to next.
// Completed and cancelled are terminal.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known session statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusConfirmed, SessionStatusInProgress,
		SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// UpcomingStatuses are the statuses listed by the upcoming-sessions query.
var UpcomingStatuses = []SessionStatus{SessionStatusScheduled, SessionStatusConfirmed}

// JoinWindow is how long before the scheduled start a meeting may be joined.
const JoinWindow = 15 * time.Minute

// Session is a confirmed teaching engagement. It is copied from the approved
// request and does not reference it afterwards.
type Session struct {
	ID              int64         `json:"id"`
	TeacherID       int64         `json:"teacherId"`
	LearnerID       int64         `json:"learnerId"`
	SkillID         int64         `json:"skillId"`
	ScheduledTime   time.Time     `json:"scheduledTime"`
	Duration        int           `json:"duration"` // minutes
	Status          SessionStatus `json:"status"`
	Location        string        `json:"location,omitempty"`
	SessionType     SessionType   `json:"sessionType"`
	MeetingURL      string        `json:"meetingUrl,omitempty"`
	MeetingID       string        `json:"meetingId,omitempty"`
	MeetingPassword string        `json:"meetingPassword,omitempty"`
	MeetingTier     MeetingTier   `json:"meetingTier,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// IsVirtual checks if the session takes place online
func (s *Session) IsVirtual() bool {
	return s.SessionType == SessionTypeVirtual
}

// HasMeeting reports whether meeting fields have already been provisioned.
func (s *Session) HasMeeting() bool {
	return s.MeetingURL != ""
}

// IsRealMeeting reports whether the meeting link is backed by a provider-hosted
// conference rather than a locally generated placeholder.
func (s *Session) IsRealMeeting() bool {
	return s.MeetingTier == MeetingTierProvider
}

// ApplyMeeting copies the meeting identity onto the session.
func (s *Session) ApplyMeeting(m *Meeting) {
	if m == nil {
		return
	}
	s.MeetingURL = m.URL
	s.MeetingID = m.ID
	s.MeetingPassword = m.Password
	s.MeetingTier = m.Tier
}

// ClearMeeting removes every meeting field.
func (s *Session) ClearMeeting() {
	s.MeetingURL = ""
	s.MeetingID = ""
	s.MeetingPassword = ""
	s.MeetingTier = ""
}

// EndTime returns the scheduled end of the session.
func (s *Session) EndTime() time.Time {
	return s.ScheduledTime.Add(time.Duration(s.Duration) * time.Minute)
}

// Joinable reports whether a virtual session's meeting can be joined at now.
func (s *Session) Joinable(now time.Time) bool {
	if !s.IsVirtual() || !s.HasMeeting() {
		return false
	}
	if s.Status != SessionStatusScheduled && s.Status != SessionStatusConfirmed && s.Status != SessionStatusInProgress {
		return false
	}
	return !now.Before(s.ScheduledTime.Add(-JoinWindow))
}

// SessionFilter selects sessions. Zero fields match everything.
type SessionFilter struct {
	TeacherID int64
	LearnerID int64
	Statuses  []SessionStatus
}

// SessionUpdate carries the fields of a partial session update.
// Nil and empty fields are left untouched.
type SessionUpdate struct {
	ScheduledTime *time.Time
	Duration      *int
	Status        SessionStatus
	Location      string
	SessionType   SessionType
}
