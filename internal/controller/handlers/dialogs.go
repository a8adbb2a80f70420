package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/formatting"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/state"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// handleRequestResponse завершает диалог ответа учителя на заявку
func (h *Handlers) handleRequestResponse(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	requestID, ok1 := h.stateManager.GetInt64(telegramID, state.DataRequestID)
	action, ok2 := h.stateManager.GetString(telegramID, state.DataAction)

	// Диалог завершается при любом исходе
	h.stateManager.ClearState(telegramID)

	if !ok1 || !ok2 {
		h.logger.Error("Missing data for request response", zap.Int64("telegram_id", telegramID))
		h.sendError(ctx, b, chatID, "❌ Ошибка: данные не найдены. Начните заново через /requests")
		return
	}

	response := strings.TrimSpace(update.Message.Text)
	if response == common.SkipResponse {
		response = ""
	}
	if len(response) > RequestNotesMaxLength {
		h.sendError(ctx, b, chatID, "❌ Сообщение слишком длинное. Начните заново через /requests")
		return
	}

	switch action {
	case common.ActionApprove:
		h.approveRequest(ctx, b, chatID, requestID, response)
	case common.ActionReject:
		h.rejectRequest(ctx, b, chatID, requestID, response)
	default:
		h.logger.Error("Unknown request action", zap.String("action", action))
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrInvalidFormat))
	}
}

func (h *Handlers) approveRequest(ctx context.Context, b *bot.Bot, chatID, requestID int64, response string) {
	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⏳ Создаём занятие и встречу...",
	})

	result, err := h.requestService.Approve(ctx, requestID, response)
	if err != nil {
		h.logResponseError("approve", requestID, err)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.notifier.RequestApproved(ctx, b, result)

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Заявка одобрена!\n\n" + formatting.FormatSession(result.Session),
	}
	if markup := common.SessionKeyboard(result.Session); markup != nil {
		params.ReplyMarkup = markup
	}
	h.sendMessage(ctx, b, params)
}

func (h *Handlers) rejectRequest(ctx context.Context, b *bot.Bot, chatID, requestID int64, response string) {
	req, err := h.requestService.Reject(ctx, requestID, response)
	if err != nil {
		h.logResponseError("reject", requestID, err)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.notifier.RequestRejected(ctx, b, req)

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🚫 Заявка отклонена.\n\n" + formatting.FormatRequest(req),
	})
}

func (h *Handlers) logResponseError(action string, requestID int64, err error) {
	if errors.Is(err, service.ErrInvalidState) || errors.Is(err, service.ErrNotFound) {
		h.logger.Info("Request response refused",
			zap.String("action", action),
			zap.Int64("request_id", requestID),
			zap.Error(err),
		)
		return
	}
	h.logger.Error("Failed to respond to request",
		zap.String("action", action),
		zap.Int64("request_id", requestID),
		zap.Error(err),
	)
}
