package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/repository/base"
)

const sessionColumns = `id, teacher_id, learner_id, skill_id, scheduled_time, duration, status,
	location, session_type, meeting_url, meeting_id, meeting_password, meeting_tier, notes,
	created_at, updated_at`

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет новую сессию
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions (teacher_id, learner_id, skill_id, scheduled_time, duration, status,
			location, session_type, meeting_url, meeting_id, meeting_password, meeting_tier, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}

	err := r.QueryRow(
		ctx, query,
		s.TeacherID,
		s.LearnerID,
		s.SkillID,
		s.ScheduledTime,
		s.Duration,
		s.Status,
		s.Location,
		s.SessionType,
		s.MeetingURL,
		s.MeetingID,
		s.MeetingPassword,
		s.MeetingTier,
		s.Notes,
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&s.ID)

	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// GetByID получает сессию по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	s, err := scanSession(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return s, nil
}

// List возвращает сессии по фильтру в порядке времени начала
func (r *SessionRepository) List(ctx context.Context, filter model.SessionFilter) ([]*model.Session, error) {
	var where base.Where
	if filter.TeacherID != 0 {
		where.Add("teacher_id = ?", filter.TeacherID)
	}
	if filter.LearnerID != 0 {
		where.Add("learner_id = ?", filter.LearnerID)
	}
	if len(filter.Statuses) > 0 {
		where.Add("status = ANY(?)", statusStrings(filter.Statuses))
	}

	cond, args := where.SQL()
	return r.list(ctx, `SELECT `+sessionColumns+` FROM sessions`+cond+` ORDER BY scheduled_time, id`, args...)
}

// ListForUser возвращает сессии, где пользователь учитель или ученик
func (r *SessionRepository) ListForUser(ctx context.Context, userID int64, statuses []model.SessionStatus) ([]*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE (teacher_id = $1 OR learner_id = $1)
		  AND (cardinality($2::text[]) = 0 OR status = ANY($2))
		ORDER BY scheduled_time, id
	`

	return r.list(ctx, query, userID, statusStrings(statuses))
}

// Update перезаписывает изменяемые поля сессии
func (r *SessionRepository) Update(ctx context.Context, s *model.Session) error {
	query := `
		UPDATE sessions
		SET scheduled_time = $1, duration = $2, status = $3, location = $4, session_type = $5,
			meeting_url = $6, meeting_id = $7, meeting_password = $8, meeting_tier = $9,
			notes = $10, updated_at = $11
		WHERE id = $12
	`

	affected, err := r.ExecAffected(
		ctx, query,
		s.ScheduledTime,
		s.Duration,
		s.Status,
		s.Location,
		s.SessionType,
		s.MeetingURL,
		s.MeetingID,
		s.MeetingPassword,
		s.MeetingTier,
		s.Notes,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

// UpdateStatus атомарно меняет статус, если текущий равен from
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, from, to model.SessionStatus) (bool, error) {
	query := `UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	affected, err := r.ExecAffected(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update session status: %w", err)
	}

	return affected == 1, nil
}

// Delete удаляет сессию
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Session, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.ID,
		&s.TeacherID,
		&s.LearnerID,
		&s.SkillID,
		&s.ScheduledTime,
		&s.Duration,
		&s.Status,
		&s.Location,
		&s.SessionType,
		&s.MeetingURL,
		&s.MeetingID,
		&s.MeetingPassword,
		&s.MeetingTier,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func statusStrings(statuses []model.SessionStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, string(st))
	}
	return out
}
