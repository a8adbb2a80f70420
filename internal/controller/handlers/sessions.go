package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/formatting"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"go.uber.org/zap"
)

// HandleSessions обрабатывает команду /sessions - ближайшие занятия пользователя
func (h *Handlers) HandleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	sessions, err := h.sessionService.GetUpcomingForUser(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to get upcoming sessions", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(sessions) == 0 {
		h.sendMessage(ctx, b, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📅 Ближайших занятий нет.",
		})
		return
	}

	now := h.now()
	for _, s := range sessions {
		h.sendMessage(ctx, b, sessionMessage(chatID, s, user.ID, now))
	}
}

// sessionMessage собирает сообщение о занятии; кнопка подключения есть только в окне входа
func sessionMessage(chatID int64, s *model.Session, userID int64, now time.Time) *bot.SendMessageParams {
	role := "🎓 Вы учитель"
	if s.LearnerID == userID {
		role = "👤 Вы ученик"
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   formatting.FormatSession(s) + "\n" + role,
	}

	if s.Joinable(now) {
		params.ReplyMarkup = common.SessionKeyboard(s)
	} else if s.IsVirtual() && s.HasMeeting() {
		params.Text += fmt.Sprintf("\n⏰ Подключиться можно за %d минут до начала", int(model.JoinWindow.Minutes()))
	}

	return params
}
