package common

// Callback data. Формат: префикс + ID заявки, например "approve_request:123"
const (
	ApproveRequest = "approve_request:"
	RejectRequest  = "reject_request:"
	CancelRequest  = "cancel_request:"
	Noop           = "noop"
)

// Действия диалога ответа на заявку
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// SkipResponse - ответ учителя, означающий "без сообщения"
const SkipResponse = "-"
