package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrRequestNotFound = fmt.Errorf("session request %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)

	// ErrInvalidState: операция недопустима из текущего статуса
	ErrInvalidState = errors.New("invalid state transition")
	// ErrInvalidRequest: входные данные не проходят проверку
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderUnavailable: уровень провижининга неприменим (нет токена, нет client credentials)
	ErrProviderUnavailable = errors.New("meeting provider unavailable")
	// ErrNoMeetingLink: событие создано, но ссылки на конференцию в ответе нет
	ErrNoMeetingLink = errors.New("provider returned no meeting link")
)

// CredentialError означает, что refresh токена у провайдера завершился ошибкой
type CredentialError struct {
	UserID int64
	Err    error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("refresh credentials for user %d: %v", e.UserID, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}
