package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
)

type SessionRequestStore struct {
	mu       sync.RWMutex
	seq      atomic.Int64
	requests map[int64]model.SessionRequest
	now      func() time.Time
}

func NewSessionRequestStore() *SessionRequestStore {
	return &SessionRequestStore{
		requests: make(map[int64]model.SessionRequest),
		now:      time.Now,
	}
}

func (s *SessionRequestStore) Create(_ context.Context, req *model.SessionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = s.seq.Add(1)
	now := s.now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = now
	}
	s.requests[req.ID] = *req
	return nil
}

func (s *SessionRequestStore) GetByID(_ context.Context, id int64) (*model.SessionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (s *SessionRequestStore) List(_ context.Context, filter model.RequestFilter) ([]*model.SessionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.SessionRequest
	for _, req := range s.requests {
		if filter.TeacherID != 0 && req.TeacherID != filter.TeacherID {
			continue
		}
		if filter.LearnerID != 0 && req.LearnerID != filter.LearnerID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		r := req
		out = append(out, &r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SessionRequestStore) UpdateStatus(_ context.Context, id int64, from, to model.RequestStatus, response string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}

	req.Status = to
	if response != "" {
		req.ResponseMessage = response
	}
	req.UpdatedAt = s.now()
	s.requests[id] = req
	return true, nil
}
