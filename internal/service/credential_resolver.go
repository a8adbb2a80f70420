package service

import (
	"context"
	"fmt"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"go.uber.org/zap"
)

// CredentialResolver решает, пригоден ли OAuth access token пользователя,
// и обновляет его через refresh token, если срок истёк.
type CredentialResolver struct {
	userRepo  UserRepository
	refresher TokenRefresher
	locks     *userLocks
	now       func() time.Time
	logger    *zap.Logger
}

func NewCredentialResolver(userRepo UserRepository, refresher TokenRefresher, logger *zap.Logger) *CredentialResolver {
	return &CredentialResolver{
		userRepo:  userRepo,
		refresher: refresher,
		locks:     newUserLocks(),
		now:       time.Now,
		logger:    logger,
	}
}

// Resolve возвращает access token пользователя и признак того, что он был обновлён.
//
// Токен календаря предпочитается общему. Истёкший токен без refresh token
// возвращается как есть. Ошибка возвращается только если сам refresh
// не удался; это *CredentialError. Пустая строка значит, что токена нет.
func (r *CredentialResolver) Resolve(ctx context.Context, user *model.User) (string, bool, error) {
	unlock := r.locks.Lock(user.ID)
	defer unlock()

	// Перечитываем пользователя под блокировкой: токен мог обновить параллельный вызов
	current := user
	if user.ID != 0 {
		stored, err := r.userRepo.GetByID(ctx, user.ID)
		if err != nil {
			return "", false, fmt.Errorf("reload user: %w", err)
		}
		if stored != nil {
			current = stored
			copyCredentials(user, stored)
		}
	}

	token, expiry, calendarScoped := selectToken(current)
	if token == "" {
		return "", false, nil
	}

	if expiry == nil || r.now().UnixMilli() < *expiry {
		return token, false, nil
	}

	if current.GoogleRefreshToken == "" || r.refresher == nil {
		r.logger.Warn("Access token expired and cannot be refreshed",
			zap.Int64("user_id", current.ID),
			zap.Bool("calendar_scoped", calendarScoped),
		)
		return token, false, nil
	}

	refreshed, err := r.refresher.Refresh(ctx, current.GoogleRefreshToken)
	if err != nil {
		r.logger.Warn("Failed to refresh access token",
			zap.Int64("user_id", current.ID),
			zap.Error(err),
		)
		return "", false, &CredentialError{UserID: current.ID, Err: err}
	}

	var expiryMillis *int64
	if !refreshed.Expiry.IsZero() {
		expiryMillis = model.ExpiryMillis(refreshed.Expiry)
	}

	if calendarScoped {
		current.GoogleCalendarToken = refreshed.AccessToken
		current.GoogleCalendarTokenExpiry = expiryMillis
	} else {
		current.GoogleAccessToken = refreshed.AccessToken
		current.GoogleTokenExpiry = expiryMillis
	}

	if err := r.userRepo.UpdateTokens(ctx, current); err != nil {
		// Токен уже получен и годен для текущего вызова
		r.logger.Error("Failed to persist refreshed token",
			zap.Int64("user_id", current.ID),
			zap.Error(err),
		)
	}
	if current != user {
		copyCredentials(user, current)
	}

	r.logger.Info("Access token refreshed",
		zap.Int64("user_id", current.ID),
		zap.Bool("calendar_scoped", calendarScoped),
	)

	return refreshed.AccessToken, true, nil
}

func selectToken(u *model.User) (token string, expiry *int64, calendarScoped bool) {
	if u.GoogleCalendarToken != "" {
		return u.GoogleCalendarToken, u.GoogleCalendarTokenExpiry, true
	}
	return u.GoogleAccessToken, u.GoogleTokenExpiry, false
}

func copyCredentials(dst, src *model.User) {
	dst.GoogleAccessToken = src.GoogleAccessToken
	dst.GoogleRefreshToken = src.GoogleRefreshToken
	dst.GoogleTokenExpiry = src.GoogleTokenExpiry
	dst.GoogleCalendarToken = src.GoogleCalendarToken
	dst.GoogleCalendarTokenExpiry = src.GoogleCalendarTokenExpiry
}
