package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
)

type SessionStore struct {
	mu       sync.RWMutex
	seq      atomic.Int64
	sessions map[int64]model.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]model.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Create(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.ID = s.seq.Add(1)
	s.sessions[session.ID] = *session
	return nil
}

func (s *SessionStore) GetByID(_ context.Context, id int64) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *SessionStore) List(_ context.Context, filter model.SessionFilter) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Session
	for _, session := range s.sessions {
		if filter.TeacherID != 0 && session.TeacherID != filter.TeacherID {
			continue
		}
		if filter.LearnerID != 0 && session.LearnerID != filter.LearnerID {
			continue
		}
		if !statusIn(session.Status, filter.Statuses) {
			continue
		}
		sess := session
		out = append(out, &sess)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SessionStore) ListForUser(_ context.Context, userID int64, statuses []model.SessionStatus) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Session
	for _, session := range s.sessions {
		if session.TeacherID != userID && session.LearnerID != userID {
			continue
		}
		if !statusIn(session.Status, statuses) {
			continue
		}
		sess := session
		out = append(out, &sess)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.Before(out[j].ScheduledTime) })
	return out, nil
}

func (s *SessionStore) Update(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return fmt.Errorf("session not found")
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *SessionStore) UpdateStatus(_ context.Context, id int64, from, to model.SessionStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || session.Status != from {
		return false, nil
	}

	session.Status = to
	session.UpdatedAt = s.now()
	s.sessions[id] = session
	return true, nil
}

func (s *SessionStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session not found")
	}
	delete(s.sessions, id)
	return nil
}

func statusIn(status model.SessionStatus, statuses []model.SessionStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if st == status {
			return true
		}
	}
	return false
}
