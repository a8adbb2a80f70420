package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type SessionRequestService struct {
	requestRepo    SessionRequestRepository
	sessionService *SessionService
	approvals      singleflight.Group
	now            func() time.Time
	logger         *zap.Logger
}

func NewSessionRequestService(
	requestRepo SessionRequestRepository,
	sessionService *SessionService,
	logger *zap.Logger,
) *SessionRequestService {
	return &SessionRequestService{
		requestRepo:    requestRepo,
		sessionService: sessionService,
		now:            time.Now,
		logger:         logger,
	}
}

// ApprovalResult содержит одобренную заявку и созданную по ней сессию
type ApprovalResult struct {
	Request *model.SessionRequest
	Session *model.Session
}

// Create создаёт заявку. Статус всегда pending.
func (s *SessionRequestService) Create(ctx context.Context, req *model.SessionRequest) (*model.SessionRequest, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.SessionType == model.SessionTypeVirtual {
		req.Location = ""
	}
	req.Status = model.RequestStatusPending
	req.ResponseMessage = ""

	now := s.now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}

	s.logger.Info("Session request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("learner_id", req.LearnerID),
		zap.Int64("teacher_id", req.TeacherID),
		zap.Int64("skill_id", req.SkillID),
	)

	return req, nil
}

// Approve одобряет заявку и создаёт по ней ровно одну сессию.
// Параллельные вызовы для одной заявки объединяются; если заявку уже
// перевели из pending, возвращается ErrInvalidState и сессия не создаётся.
func (s *SessionRequestService) Approve(ctx context.Context, requestID int64, responseMessage string) (*ApprovalResult, error) {
	v, err, _ := s.approvals.Do(strconv.FormatInt(requestID, 10), func() (interface{}, error) {
		return s.approve(ctx, requestID, responseMessage)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ApprovalResult), nil
}

func (s *SessionRequestService) approve(ctx context.Context, requestID int64, responseMessage string) (*ApprovalResult, error) {
	req, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransition(model.RequestStatusApproved) {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidState, req.Status)
	}

	// Сессия создаётся до смены статуса: если создание упадёт, заявка остаётся pending
	session, err := s.sessionService.Create(ctx, req.ToSession())
	if err != nil {
		return nil, fmt.Errorf("create session for request %d: %w", requestID, err)
	}

	ok, err := s.requestRepo.UpdateStatus(ctx, requestID, model.RequestStatusPending, model.RequestStatusApproved, responseMessage)
	if err != nil || !ok {
		s.sessionService.discard(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("update request status: %w", err)
		}
		return nil, fmt.Errorf("%w: request %d is no longer pending", ErrInvalidState, requestID)
	}

	approved, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session request approved",
		zap.Int64("request_id", requestID),
		zap.Int64("session_id", session.ID),
		zap.Bool("real_meeting", session.IsRealMeeting()),
	)

	return &ApprovalResult{Request: approved, Session: session}, nil
}

// Reject отклоняет заявку. Допустимо только из pending.
func (s *SessionRequestService) Reject(ctx context.Context, requestID int64, responseMessage string) (*model.SessionRequest, error) {
	req, err := s.transition(ctx, requestID, model.RequestStatusRejected, responseMessage)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session request rejected", zap.Int64("request_id", requestID))
	return req, nil
}

// Cancel отменяет заявку. Допустимо только из pending.
func (s *SessionRequestService) Cancel(ctx context.Context, requestID int64) (*model.SessionRequest, error) {
	req, err := s.transition(ctx, requestID, model.RequestStatusCancelled, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session request cancelled", zap.Int64("request_id", requestID))
	return req, nil
}

// UpdateStatus переводит заявку в указанный статус. Одобрение идёт через Approve,
// чтобы сессия создавалась всегда.
func (s *SessionRequestService) UpdateStatus(ctx context.Context, requestID int64, status model.RequestStatus) (*model.SessionRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown request status %q", ErrInvalidRequest, status)
	}

	if status == model.RequestStatusApproved {
		result, err := s.Approve(ctx, requestID, "")
		if err != nil {
			return nil, err
		}
		return result.Request, nil
	}

	return s.transition(ctx, requestID, status, "")
}

func (s *SessionRequestService) transition(ctx context.Context, requestID int64, to model.RequestStatus, response string) (*model.SessionRequest, error) {
	req, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: request %s -> %s", ErrInvalidState, req.Status, to)
	}

	ok, err := s.requestRepo.UpdateStatus(ctx, requestID, req.Status, to, response)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: request %d changed concurrently", ErrInvalidState, requestID)
	}

	return s.GetByID(ctx, requestID)
}

// GetByID получает заявку по ID
func (s *SessionRequestService) GetByID(ctx context.Context, requestID int64) (*model.SessionRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get session request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *SessionRequestService) GetAll(ctx context.Context) ([]*model.SessionRequest, error) {
	return s.requestRepo.List(ctx, model.RequestFilter{})
}

func (s *SessionRequestService) GetByTeacher(ctx context.Context, teacherID int64) ([]*model.SessionRequest, error) {
	return s.requestRepo.List(ctx, model.RequestFilter{TeacherID: teacherID})
}

func (s *SessionRequestService) GetByLearner(ctx context.Context, learnerID int64) ([]*model.SessionRequest, error) {
	return s.requestRepo.List(ctx, model.RequestFilter{LearnerID: learnerID})
}

func (s *SessionRequestService) GetByTeacherAndStatus(ctx context.Context, teacherID int64, status model.RequestStatus) ([]*model.SessionRequest, error) {
	return s.requestRepo.List(ctx, model.RequestFilter{TeacherID: teacherID, Status: status})
}

func (s *SessionRequestService) GetByLearnerAndStatus(ctx context.Context, learnerID int64, status model.RequestStatus) ([]*model.SessionRequest, error) {
	return s.requestRepo.List(ctx, model.RequestFilter{LearnerID: learnerID, Status: status})
}

// GetPendingByTeacher получает заявки, ожидающие решения учителя
func (s *SessionRequestService) GetPendingByTeacher(ctx context.Context, teacherID int64) ([]*model.SessionRequest, error) {
	return s.GetByTeacherAndStatus(ctx, teacherID, model.RequestStatusPending)
}

// GetApprovedByLearner получает одобренные заявки ученика
func (s *SessionRequestService) GetApprovedByLearner(ctx context.Context, learnerID int64) ([]*model.SessionRequest, error) {
	return s.GetByLearnerAndStatus(ctx, learnerID, model.RequestStatusApproved)
}

func validateRequest(req *model.SessionRequest) error {
	var problems []error
	if req.LearnerID == 0 || req.TeacherID == 0 {
		problems = append(problems, errors.New("learner and teacher are required"))
	}
	if req.LearnerID != 0 && req.LearnerID == req.TeacherID {
		problems = append(problems, errors.New("learner cannot request a session with themselves"))
	}
	if req.Duration <= 0 {
		problems = append(problems, errors.New("duration must be positive"))
	}
	if req.RequestedTime.IsZero() {
		problems = append(problems, errors.New("requested time is required"))
	}
	switch req.SessionType {
	case model.SessionTypeVirtual:
	case model.SessionTypeInPerson:
		if req.Location == "" {
			problems = append(problems, errors.New("location is required for in-person sessions"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown session type %q", req.SessionType))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(problems...))
	}
	return nil
}
