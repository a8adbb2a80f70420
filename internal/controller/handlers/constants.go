package handlers

// Константы валидации заявки на занятие
const (
	// Длительность занятия (в минутах)
	RequestMinDuration = 15  // 15 минут
	RequestMaxDuration = 480 // 8 часов

	// Заметки к заявке
	RequestNotesMaxLength = 500
)

// Формат даты и времени в командах
const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

const requestUsage = "Формат команды:\n" +
	"<code>/request ID_учителя ID_навыка ДД.ММ.ГГГГ ЧЧ:ММ минуты online</code>\n" +
	"<code>/request ID_учителя ID_навыка ДД.ММ.ГГГГ ЧЧ:ММ минуты offline место</code>\n\n" +
	"Пример: <code>/request 2 5 14.03.2026 18:00 60 online</code>"
