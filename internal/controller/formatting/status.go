package formatting

import "github.com/latafatguliyeva/Skill-sharing-platform/internal/model"

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetRequestStatusDisplay возвращает emoji и текст для статуса заявки
func GetRequestStatusDisplay(status model.RequestStatus) StatusDisplay {
	displays := map[model.RequestStatus]StatusDisplay{
		model.RequestStatusPending:   {"⏳", "Ожидает ответа"},
		model.RequestStatusApproved:  {"✅", "Одобрена"},
		model.RequestStatusRejected:  {"🚫", "Отклонена"},
		model.RequestStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetSessionStatusDisplay возвращает emoji и текст для статуса сессии
func GetSessionStatusDisplay(status model.SessionStatus) StatusDisplay {
	displays := map[model.SessionStatus]StatusDisplay{
		model.SessionStatusScheduled:  {"📅", "Запланирована"},
		model.SessionStatusConfirmed:  {"✅", "Подтверждена"},
		model.SessionStatusInProgress: {"▶️", "Идёт"},
		model.SessionStatusCompleted:  {"✔️", "Завершена"},
		model.SessionStatusCancelled:  {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetSessionTypeText возвращает название формата занятия
func GetSessionTypeText(t model.SessionType) string {
	switch t {
	case model.SessionTypeVirtual:
		return "🎥 Онлайн"
	case model.SessionTypeInPerson:
		return "📍 Очно"
	default:
		return string(t)
	}
}
