package common

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/formatting"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/controller/keyboard"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
	"go.uber.org/zap"
)

// UserLookup находит пользователя по внутреннему ID
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Notifier отправляет участникам уведомления о заявках
type Notifier struct {
	users  UserLookup
	logger *zap.Logger
}

func NewNotifier(users UserLookup, logger *zap.Logger) *Notifier {
	return &Notifier{users: users, logger: logger}
}

// NewRequest уведомляет учителя о новой заявке
func (n *Notifier) NewRequest(ctx context.Context, b *bot.Bot, req *model.SessionRequest) {
	n.send(ctx, b, req.TeacherID, &bot.SendMessageParams{
		Text:        "📬 Новая заявка на занятие\n\n" + formatting.FormatRequest(req),
		ReplyMarkup: RequestKeyboard(req.ID),
	})
}

// RequestApproved уведомляет ученика об одобрении и присылает данные встречи
func (n *Notifier) RequestApproved(ctx context.Context, b *bot.Bot, result *service.ApprovalResult) {
	params := &bot.SendMessageParams{
		Text: fmt.Sprintf("✅ Заявка #%d одобрена!\n\n%s",
			result.Request.ID, formatting.FormatSession(result.Session)),
	}
	if result.Request.ResponseMessage != "" {
		params.Text += "\n\n💬 " + result.Request.ResponseMessage
	}
	if markup := SessionKeyboard(result.Session); markup != nil {
		params.ReplyMarkup = markup
	}

	n.send(ctx, b, result.Request.LearnerID, params)
}

// RequestRejected уведомляет ученика об отказе
func (n *Notifier) RequestRejected(ctx context.Context, b *bot.Bot, req *model.SessionRequest) {
	text := fmt.Sprintf("🚫 Заявка #%d отклонена учителем.", req.ID)
	if req.ResponseMessage != "" {
		text += "\n\n💬 " + req.ResponseMessage
	}
	n.send(ctx, b, req.LearnerID, &bot.SendMessageParams{Text: text})
}

// RequestCancelled уведомляет учителя об отмене заявки учеником
func (n *Notifier) RequestCancelled(ctx context.Context, b *bot.Bot, req *model.SessionRequest) {
	n.send(ctx, b, req.TeacherID, &bot.SendMessageParams{
		Text: fmt.Sprintf("❌ Ученик отменил заявку #%d.", req.ID),
	})
}

// SessionKeyboard - кнопка подключения к онлайн-встрече
func SessionKeyboard(s *model.Session) *models.InlineKeyboardMarkup {
	if !s.IsVirtual() || !s.HasMeeting() {
		return nil
	}
	return keyboard.NewBuilder().
		Row(keyboard.URLButton("🎥 Подключиться", s.MeetingURL)).
		Build()
}

func (n *Notifier) send(ctx context.Context, b *bot.Bot, userID int64, params *bot.SendMessageParams) {
	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		n.logger.Warn("Failed to load notification recipient", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if user.TelegramID == 0 {
		// Пользователь не подключён к боту
		return
	}

	params.ChatID = user.TelegramID
	if _, err := b.SendMessage(ctx, params); err != nil {
		n.logger.Error("Failed to send notification",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
