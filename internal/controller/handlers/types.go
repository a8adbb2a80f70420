package handlers

import (
	"context"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/state"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// CalendarChecker проверяет доступ пользователя к Google Calendar
type CalendarChecker interface {
	TestUserCalendarAccess(ctx context.Context, user *model.User) bool
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	requestService  *service.SessionRequestService
	sessionService  *service.SessionService
	calendarChecker CalendarChecker
	stateManager    *state.Manager
	notifier        *common.Notifier
	location        *time.Location
	now             func() time.Time
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	requestService *service.SessionRequestService,
	sessionService *service.SessionService,
	calendarChecker CalendarChecker,
	stateManager *state.Manager,
	notifier *common.Notifier,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		requestService:  requestService,
		sessionService:  sessionService,
		calendarChecker: calendarChecker,
		stateManager:    stateManager,
		notifier:        notifier,
		location:        time.Local,
		now:             time.Now,
		logger:          logger,
	}
}
