package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
)

type UserStore struct {
	mu    sync.RWMutex
	seq   atomic.Int64
	users map[int64]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]model.User)}
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.TelegramID != 0 {
		for _, u := range s.users {
			if u.TelegramID == user.TelegramID {
				return fmt.Errorf("user with telegram id %d already exists", user.TelegramID)
			}
		}
	}

	user.ID = s.seq.Add(1)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := copyUser(&u)
	return &out, nil
}

func (s *UserStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.TelegramID == telegramID {
			out := copyUser(&u)
			return &out, nil
		}
	}
	return nil, nil
}

// Update сохраняет профиль пользователя, OAuth-поля не меняются
func (s *UserStore) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return fmt.Errorf("user not found")
	}

	stored.Username = user.Username
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.LanguageCode = user.LanguageCode
	s.users[user.ID] = stored
	return nil
}

// UpdateTokens сохраняет OAuth-поля пользователя
func (s *UserStore) UpdateTokens(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return fmt.Errorf("user not found")
	}

	stored.GoogleAccessToken = user.GoogleAccessToken
	stored.GoogleRefreshToken = user.GoogleRefreshToken
	stored.GoogleTokenExpiry = copyInt64(user.GoogleTokenExpiry)
	stored.GoogleCalendarToken = user.GoogleCalendarToken
	stored.GoogleCalendarTokenExpiry = copyInt64(user.GoogleCalendarTokenExpiry)
	s.users[user.ID] = stored
	return nil
}

func copyUser(u *model.User) model.User {
	out := *u
	out.GoogleTokenExpiry = copyInt64(u.GoogleTokenExpiry)
	out.GoogleCalendarTokenExpiry = copyInt64(u.GoogleCalendarTokenExpiry)
	return out
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
