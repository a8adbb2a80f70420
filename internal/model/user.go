package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	LanguageCode string    `json:"language_code"`
	CreatedAt    time.Time `json:"created_at"`

	// OAuth-состояние пользователя у провайдера календаря.
	// Пишется только CredentialResolver (refresh) и внешним auth-сервисом (первичный grant).
	GoogleAccessToken         string `json:"-"`
	GoogleRefreshToken        string `json:"-"`
	GoogleTokenExpiry         *int64 `json:"google_token_expiry,omitempty"` // epoch millis
	GoogleCalendarToken       string `json:"-"`
	GoogleCalendarTokenExpiry *int64 `json:"google_calendar_token_expiry,omitempty"` // epoch millis
}

// FullName возвращает отображаемое имя пользователя
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// HasCalendarAccess проверяет, есть ли у пользователя хоть какой-то access token
func (u *User) HasCalendarAccess() bool {
	return u.GoogleCalendarToken != "" || u.GoogleAccessToken != ""
}

// ExpiryMillis converts t to the epoch-millis representation stored on User.
func ExpiryMillis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}
