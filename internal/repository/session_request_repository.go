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

const requestColumns = `id, learner_id, teacher_id, skill_id, requested_time, duration, session_type,
	location, notes, status, response_message, created_at, updated_at`

type SessionRequestRepository struct {
	*base.Repository
}

func NewSessionRequestRepository(pool *pgxpool.Pool) *SessionRequestRepository {
	return &SessionRequestRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый запрос на занятие
func (r *SessionRequestRepository) Create(ctx context.Context, req *model.SessionRequest) error {
	query := `
		INSERT INTO session_requests (learner_id, teacher_id, skill_id, requested_time, duration,
			session_type, location, notes, status, response_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = now
	}

	err := r.QueryRow(
		ctx, query,
		req.LearnerID,
		req.TeacherID,
		req.SkillID,
		req.RequestedTime,
		req.Duration,
		req.SessionType,
		req.Location,
		req.Notes,
		req.Status,
		req.ResponseMessage,
		req.CreatedAt,
		req.UpdatedAt,
	).Scan(&req.ID)

	if err != nil {
		return fmt.Errorf("create session request: %w", err)
	}

	return nil
}

// GetByID получает запрос по ID
func (r *SessionRequestRepository) GetByID(ctx context.Context, id int64) (*model.SessionRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM session_requests WHERE id = $1`

	req, err := scanRequest(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session request: %w", err)
	}

	return req, nil
}

// List возвращает запросы по фильтру, отсортированные по ID
func (r *SessionRequestRepository) List(ctx context.Context, filter model.RequestFilter) ([]*model.SessionRequest, error) {
	var where base.Where
	if filter.TeacherID != 0 {
		where.Add("teacher_id = ?", filter.TeacherID)
	}
	if filter.LearnerID != 0 {
		where.Add("learner_id = ?", filter.LearnerID)
	}
	if filter.Status != "" {
		where.Add("status = ?", filter.Status)
	}

	cond, args := where.SQL()
	query := `SELECT ` + requestColumns + ` FROM session_requests` + cond + ` ORDER BY id`

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list session requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.SessionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// UpdateStatus атомарно меняет статус, если текущий равен from.
// Пустой response не затирает сохранённый ответ.
func (r *SessionRequestRepository) UpdateStatus(ctx context.Context, id int64, from, to model.RequestStatus, response string) (bool, error) {
	query := `
		UPDATE session_requests
		SET status = $1,
			response_message = COALESCE(NULLIF($2, ''), response_message),
			updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	affected, err := r.ExecAffected(ctx, query, to, response, id, from)
	if err != nil {
		return false, fmt.Errorf("update session request status: %w", err)
	}

	return affected == 1, nil
}

func scanRequest(row pgx.Row) (*model.SessionRequest, error) {
	var req model.SessionRequest
	err := row.Scan(
		&req.ID,
		&req.LearnerID,
		&req.TeacherID,
		&req.SkillID,
		&req.RequestedTime,
		&req.Duration,
		&req.SessionType,
		&req.Location,
		&req.Notes,
		&req.Status,
		&req.ResponseMessage,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
