package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/formatting"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// HandleRequest обрабатывает команду /request - заявка ученика учителю
func (h *Handlers) HandleRequest(ctx context.Context, b *bot.Bot, update *models.Update) {
	learner, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	req, err := parseRequestArgs(commandArgs(update.Message.Text), h.location, h.now())
	if err != nil {
		h.logger.Debug("Invalid /request arguments", zap.Error(err))
		h.sendMessage(ctx, b, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      "❌ Не удалось разобрать заявку.\n\n" + requestUsage,
			ParseMode: models.ParseModeHTML,
		})
		return
	}
	req.LearnerID = learner.ID

	if _, err := h.userService.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Учитель с ID %d не найден", req.TeacherID))
			return
		}
		h.logger.Error("Failed to get teacher", zap.Int64("teacher_id", req.TeacherID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	created, err := h.requestService.Create(ctx, req)
	if err != nil {
		h.logger.Warn("Failed to create session request", zap.Int64("learner_id", learner.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.notifier.NewRequest(ctx, b, created)

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📨 Заявка отправлена учителю!\n\n" + formatting.FormatRequest(created),
		ReplyMarkup: common.CancelKeyboard(created.ID),
	})
}

// HandleIncomingRequests обрабатывает команду /requests - заявки, ожидающие ответа учителя
func (h *Handlers) HandleIncomingRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	teacher, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	pending, err := h.requestService.GetPendingByTeacher(ctx, teacher.ID)
	if err != nil {
		h.logger.Error("Failed to get pending requests", zap.Int64("teacher_id", teacher.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(pending) == 0 {
		h.sendMessage(ctx, b, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 Нет заявок, ожидающих ответа.",
		})
		return
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("📬 Заявок, ожидающих ответа: %d", len(pending)),
	})

	for _, req := range pending {
		h.sendMessage(ctx, b, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        h.describeRequest(ctx, req, req.LearnerID, "👤 Ученик"),
			ReplyMarkup: common.RequestKeyboard(req.ID),
		})
	}
}

// HandleMyRequests обрабатывает команду /myrequests - заявки ученика
func (h *Handlers) HandleMyRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	learner, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	requests, err := h.requestService.GetByLearner(ctx, learner.ID)
	if err != nil {
		h.logger.Error("Failed to get learner requests", zap.Int64("learner_id", learner.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(requests) == 0 {
		h.sendMessage(ctx, b, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 У вас пока нет заявок.\n\nОтправить заявку: /request",
		})
		return
	}

	for _, req := range requests {
		params := &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.describeRequest(ctx, req, req.TeacherID, "🎓 Учитель"),
		}
		if req.IsPending() {
			params.ReplyMarkup = common.CancelKeyboard(req.ID)
		}
		h.sendMessage(ctx, b, params)
	}
}

// describeRequest форматирует заявку с именем второго участника
func (h *Handlers) describeRequest(ctx context.Context, req *model.SessionRequest, otherID int64, label string) string {
	text := formatting.FormatRequest(req)

	other, err := h.userService.GetByID(ctx, otherID)
	if err != nil {
		h.logger.Warn("Failed to load participant", zap.Int64("user_id", otherID), zap.Error(err))
		return text
	}

	return fmt.Sprintf("%s\n%s: %s", text, label, other.FullName())
}
