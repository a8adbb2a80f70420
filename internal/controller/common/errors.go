package common

import (
	"errors"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/service"
)

// Ошибки уровня контроллера
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrForbidden     = errors.New("user is not a participant")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrRequestNotFound):
		return "❌ Заявка не найдена"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Занятие не найдено"
	case errors.Is(err, service.ErrInvalidState):
		return "⚠️ Заявка уже обработана"
	case errors.Is(err, service.ErrInvalidRequest):
		return "❌ Некорректные данные заявки"
	case errors.Is(err, ErrForbidden):
		return "❌ У вас нет доступа к этой заявке"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
