package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/repository/base"
)

const userColumns = `id, COALESCE(telegram_id, 0), username, email, first_name, last_name, language_code,
	google_access_token, google_refresh_token, google_token_expiry,
	google_calendar_token, google_calendar_token_expiry, created_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, email, first_name, last_name, language_code,
			google_access_token, google_refresh_token, google_token_expiry,
			google_calendar_token, google_calendar_token_expiry)
		VALUES (NULLIF($1::bigint, 0), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
		user.GoogleAccessToken,
		user.GoogleRefreshToken,
		user.GoogleTokenExpiry,
		user.GoogleCalendarToken,
		user.GoogleCalendarTokenExpiry,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// Update обновляет профиль пользователя (без OAuth-полей)
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4, language_code = $5
		WHERE id = $6
	`

	affected, err := r.ExecAffected(
		ctx, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// UpdateTokens сохраняет OAuth-поля пользователя
func (r *UserRepository) UpdateTokens(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET google_access_token = $1, google_refresh_token = $2, google_token_expiry = $3,
			google_calendar_token = $4, google_calendar_token_expiry = $5
		WHERE id = $6
	`

	affected, err := r.ExecAffected(
		ctx, query,
		user.GoogleAccessToken,
		user.GoogleRefreshToken,
		user.GoogleTokenExpiry,
		user.GoogleCalendarToken,
		user.GoogleCalendarTokenExpiry,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user tokens: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.LanguageCode,
		&user.GoogleAccessToken,
		&user.GoogleRefreshToken,
		&user.GoogleTokenExpiry,
		&user.GoogleCalendarToken,
		&user.GoogleCalendarTokenExpiry,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
