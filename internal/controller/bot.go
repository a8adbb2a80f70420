package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/callbacks"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/handlers"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/state"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	requestService *service.SessionRequestService,
	sessionService *service.SessionService,
	calendarChecker handlers.CalendarChecker,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()
	notifier := common.NewNotifier(userService, logger)

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		userService,
		requestService,
		sessionService,
		calendarChecker,
		stateManager,
		notifier,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		userService,
		requestService,
		stateManager,
		notifier,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Заявки: "/request" без аргументов покажет формат команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/request", bot.MatchTypeExact, c.handlers.HandleRequest)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/request ", bot.MatchTypePrefix, c.handlers.HandleRequest)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/requests", bot.MatchTypeExact, c.handlers.HandleIncomingRequests)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myrequests", bot.MatchTypeExact, c.handlers.HandleMyRequests)

	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sessions", bot.MatchTypeExact, c.handlers.HandleSessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/email", bot.MatchTypePrefix, c.handlers.HandleEmail)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendarcheck", bot.MatchTypeExact, c.handlers.HandleCalendarCheck)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "request", Description: "📨 Заявка на занятие"},
		{Command: "myrequests", Description: "📋 Мои заявки"},
		{Command: "requests", Description: "📬 Входящие заявки (учитель)"},
		{Command: "sessions", Description: "📅 Ближайшие занятия"},
		{Command: "email", Description: "📧 Email для приглашений"},
		{Command: "calendarcheck", Description: "🗓 Проверить Google Calendar"},
		{Command: "cancel", Description: "✖️ Отменить действие"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
