package callbacks

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/formatting"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/state"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// loadRequest загружает пользователя и заявку из callback data
func (h *Handler) loadRequest(ctx context.Context, callback *models.CallbackQuery) (*model.User, *model.SessionRequest, error) {
	requestID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		return nil, nil, err
	}

	user, err := h.UserService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		return nil, nil, err
	}

	req, err := h.RequestService.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	return user, req, nil
}

// handleRespond начинает диалог ответа учителя: следующее текстовое сообщение
// станет ответом, после чего заявка будет одобрена или отклонена
func (h *Handler) handleRespond(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, action string) {
	user, req, err := h.loadRequest(ctx, callback)
	if err != nil {
		h.Logger.Error("Failed to load request", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if req.TeacherID != user.ID {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrForbidden))
		return
	}
	if !req.IsPending() {
		display := formatting.GetRequestStatusDisplay(req.Status)
		common.AnswerCallbackAlert(ctx, b, callback.ID, fmt.Sprintf("%s Заявка уже: %s", display.Emoji, display.Text))
		return
	}

	h.StateManager.Begin(callback.From.ID, state.StateRespondingToRequest, map[string]interface{}{
		state.DataRequestID: req.ID,
		state.DataAction:    action,
	})

	prompt := "✍️ Напишите сообщение ученику (например, что взять с собой).\n\n" +
		"Отправьте «" + common.SkipResponse + "», чтобы ответить без сообщения, или /cancel для отмены."
	if action == common.ActionReject {
		prompt = "✍️ Напишите причину отказа.\n\n" +
			"Отправьте «" + common.SkipResponse + "», чтобы отклонить без комментария, или /cancel для отмены."
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		return
	}
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   prompt,
	}); err != nil {
		h.Logger.Error("Failed to send prompt", zap.Int64("request_id", req.ID), zap.Error(err))
	}
}

// handleCancelRequest отменяет заявку по кнопке ученика
func (h *Handler) handleCancelRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	user, req, err := h.loadRequest(ctx, callback)
	if err != nil {
		h.Logger.Error("Failed to load request", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if req.LearnerID != user.ID {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrForbidden))
		return
	}

	cancelled, err := h.RequestService.Cancel(ctx, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			h.Logger.Info("Request is no longer pending", zap.Int64("request_id", req.ID))
		} else {
			h.Logger.Error("Failed to cancel request", zap.Int64("request_id", req.ID), zap.Error(err))
		}
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.Notifier.RequestCancelled(ctx, b, cancelled)
	common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Заявка отменена")

	// Обновляем сообщение
	msg := common.GetMessageFromCallback(callback)
	if msg != nil {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      formatting.FormatRequest(cancelled),
		})
	}
}
