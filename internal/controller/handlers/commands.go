package handlers

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/state"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From

	// Регистрируем пользователя
	user, err := h.userService.RegisterUser(ctx, service.TelegramProfile{
		TelegramID:   from.ID,
		Username:     from.Username,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		LanguageCode: from.LanguageCode,
	})
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это платформа обмена навыками: договаривайтесь о занятиях с учителями "+
			"и получайте ссылку на Google Meet автоматически.\n\n"+
			"Ваш ID: <code>%d</code> (сообщите его ученикам, если вы учитель)\n\n"+
			"/request - Отправить заявку на занятие\n"+
			"/myrequests - Мои заявки\n"+
			"/requests - Входящие заявки (учитель)\n"+
			"/sessions - Ближайшие занятия\n"+
			"/help - Справка",
		user.FullName(),
		user.ID,
	)

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      welcomeText,
		ParseMode: models.ParseModeHTML,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"Для учеников:\n" +
		"/request - Отправить заявку учителю\n" +
		"/myrequests - Мои заявки и их статус\n\n" +
		"Для учителей:\n" +
		"/requests - Заявки, ожидающие ответа\n\n" +
		"Общие:\n" +
		"/sessions - Ближайшие занятия и ссылки на встречи\n" +
		"/email - Указать email для приглашений в календарь\n" +
		"/calendarcheck - Проверить доступ к Google Calendar\n" +
		"/cancel - Отменить текущее действие\n\n" +
		requestUsage

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      helpText,
		ParseMode: models.ParseModeHTML,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleEmail обрабатывает команду /email адрес
func (h *Handlers) HandleEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		current := user.Email
		if current == "" {
			current = "не указан"
		}
		h.sendError(ctx, b, update.Message.Chat.ID,
			"📧 Текущий email: "+current+"\n\nЧтобы изменить: /email name@example.com")
		return
	}

	addr, err := mail.ParseAddress(args[0])
	if err != nil || addr.Address != args[0] {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Некорректный email")
		return
	}

	if _, err := h.userService.UpdateEmail(ctx, user.ID, addr.Address); err != nil {
		h.logger.Error("Failed to update email", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось сохранить email")
		return
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Email сохранён. Приглашения в календарь будут приходить на " + addr.Address,
	})
}

// HandleCalendarCheck обрабатывает команду /calendarcheck
func (h *Handlers) HandleCalendarCheck(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	var text string
	switch {
	case !user.HasCalendarAccess():
		text = "⚠️ Google Calendar не подключён.\n\n" +
			"Встречи будут создаваться со ссылкой-заглушкой, если ни у одного участника нет доступа к календарю."
	case h.calendarChecker.TestUserCalendarAccess(ctx, user):
		text = "✅ Доступ к Google Calendar работает. Встречи будут создаваться в вашем календаре."
	default:
		text = "❌ Токен Google Calendar недействителен. Подключите календарь заново."
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
	case state.StateRespondingToRequest:
		h.handleRequestResponse(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
