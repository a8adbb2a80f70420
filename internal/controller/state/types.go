package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Учитель пишет ответ на заявку перед одобрением или отклонением
	StateRespondingToRequest UserState = "responding_to_request"
)

// Ключи временных данных
const (
	DataRequestID = "request_id"
	DataAction    = "action"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
