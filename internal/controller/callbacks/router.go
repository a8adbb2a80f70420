package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/common"
	"go.uber.org/zap"
)

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	data := callback.Data

	h.Logger.Info("Callback received",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
	)

	switch {
	case strings.HasPrefix(data, common.ApproveRequest):
		h.handleRespond(ctx, b, callback, common.ActionApprove)
	case strings.HasPrefix(data, common.RejectRequest):
		h.handleRespond(ctx, b, callback, common.ActionReject)
	case strings.HasPrefix(data, common.CancelRequest):
		h.handleCancelRequest(ctx, b, callback)
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
