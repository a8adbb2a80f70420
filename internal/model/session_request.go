package model

import "time"

// RequestStatus is the lifecycle state of a SessionRequest.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending: {RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled},
}

// CanTransition reports whether a request may move from s to next.
// Every state except pending is terminal.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known request statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

type SessionType string

const (
	SessionTypeVirtual  SessionType = "virtual"
	SessionTypeInPerson SessionType = "in_person"
)

// SessionRequest represents a learner's proposal to take a session with a teacher
type SessionRequest struct {
	ID              int64         `json:"id"`
	LearnerID       int64         `json:"learnerId"`
	TeacherID       int64         `json:"teacherId"`
	SkillID         int64         `json:"skillId"`
	RequestedTime   time.Time     `json:"requestedTime"`
	Duration        int           `json:"duration"` // minutes
	SessionType     SessionType   `json:"sessionType"`
	Location        string        `json:"location,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Status          RequestStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	ResponseMessage string        `json:"responseMessage,omitempty"`
}

// IsPending checks if request is pending
func (r *SessionRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// ToSession copies the scheduling fields of the request into a new Session.
func (r *SessionRequest) ToSession() *Session {
	return &Session{
		TeacherID:     r.TeacherID,
		LearnerID:     r.LearnerID,
		SkillID:       r.SkillID,
		ScheduledTime: r.RequestedTime,
		Duration:      r.Duration,
		SessionType:   r.SessionType,
		Location:      r.Location,
		Notes:         r.Notes,
		Status:        SessionStatusScheduled,
	}
}

// RequestFilter selects session requests. Zero fields match everything.
type RequestFilter struct {
	TeacherID int64
	LearnerID int64
	Status    RequestStatus
}
