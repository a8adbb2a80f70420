package callbacks

import (
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/state"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// Handler содержит зависимости для обработки callback queries
type Handler struct {
	UserService    *service.UserService
	RequestService *service.SessionRequestService
	StateManager   *state.Manager
	Notifier       *common.Notifier
	Logger         *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	requestService *service.SessionRequestService,
	stateManager *state.Manager,
	notifier *common.Notifier,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		UserService:    userService,
		RequestService: requestService,
		StateManager:   stateManager,
		Notifier:       notifier,
		Logger:         logger,
	}
}
