package service

import (
	"context"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/provider"
)

// Репозитории возвращают (nil, nil), если запись не найдена.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateTokens(ctx context.Context, user *model.User) error
}

type SessionRequestRepository interface {
	Create(ctx context.Context, req *model.SessionRequest) error
	GetByID(ctx context.Context, id int64) (*model.SessionRequest, error)
	List(ctx context.Context, filter model.RequestFilter) ([]*model.SessionRequest, error)
	// UpdateStatus меняет статус только если текущий статус равен from (compare-and-set)
	UpdateStatus(ctx context.Context, id int64, from, to model.RequestStatus, response string) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	List(ctx context.Context, filter model.SessionFilter) ([]*model.Session, error)
	// ListForUser возвращает сессии, где пользователь учитель или ученик
	ListForUser(ctx context.Context, userID int64, statuses []model.SessionStatus) ([]*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	UpdateStatus(ctx context.Context, id int64, from, to model.SessionStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarProvider is the conferencing provider API.
type CalendarProvider interface {
	CreateEvent(ctx context.Context, accessToken string, in provider.EventInput) (*provider.Event, error)
	ListUpcoming(ctx context.Context, accessToken string, max int64) (int, error)
	CheckConnectivity(ctx context.Context) error
}

// TokenRefresher exchanges a refresh token for a new access token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*provider.RefreshedToken, error)
}

// Provisioner produces meeting identities for virtual sessions.
type Provisioner interface {
	// Provision never fails: it degrades to a placeholder meeting.
	Provision(ctx context.Context, req MeetingRequest) *model.Meeting
	// Basic returns a random placeholder meeting without contacting the provider.
	Basic() *model.Meeting
}
