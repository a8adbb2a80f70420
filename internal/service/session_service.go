package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"go.uber.org/zap"
)

type SessionService struct {
	sessionRepo SessionRepository
	userRepo    UserRepository
	provisioner Provisioner
	now         func() time.Time
	logger      *zap.Logger
}

func NewSessionService(
	sessionRepo SessionRepository,
	userRepo UserRepository,
	provisioner Provisioner,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		provisioner: provisioner,
		now:         time.Now,
		logger:      logger,
	}
}

// Create создаёт сессию. Для виртуальной сессии создаётся встреча;
// неудача провижининга не прерывает создание.
func (s *SessionService) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	if err := validateSession(session); err != nil {
		return nil, err
	}

	session.Status = model.SessionStatusScheduled
	session.ClearMeeting()

	if session.IsVirtual() {
		if err := s.provision(ctx, session); err != nil {
			return nil, err
		}
	}

	now := s.now()
	session.CreatedAt = now
	session.UpdatedAt = now

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("Session created",
		zap.Int64("session_id", session.ID),
		zap.Int64("teacher_id", session.TeacherID),
		zap.Int64("learner_id", session.LearnerID),
		zap.String("type", string(session.SessionType)),
		zap.String("meeting_tier", string(session.MeetingTier)),
	)

	return session, nil
}

// CreateBulk создаёт сессии со случайными ссылками, не обращаясь к провайдеру
func (s *SessionService) CreateBulk(ctx context.Context, sessions []*model.Session) ([]*model.Session, error) {
	created := make([]*model.Session, 0, len(sessions))
	for _, session := range sessions {
		if err := validateSession(session); err != nil {
			return created, err
		}

		session.Status = model.SessionStatusScheduled
		session.ClearMeeting()
		if session.IsVirtual() {
			session.ApplyMeeting(s.provisioner.Basic())
		}

		now := s.now()
		session.CreatedAt = now
		session.UpdatedAt = now

		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return created, fmt.Errorf("create session: %w", err)
		}
		created = append(created, session)
	}

	s.logger.Info("Sessions created in bulk", zap.Int("count", len(created)))
	return created, nil
}

// provision находит обоих участников и заполняет поля встречи
func (s *SessionService) provision(ctx context.Context, session *model.Session) error {
	teacher, err := s.userRepo.GetByID(ctx, session.TeacherID)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return fmt.Errorf("teacher %d: %w", session.TeacherID, ErrUserNotFound)
	}

	learner, err := s.userRepo.GetByID(ctx, session.LearnerID)
	if err != nil {
		return fmt.Errorf("get learner: %w", err)
	}
	if learner == nil {
		return fmt.Errorf("learner %d: %w", session.LearnerID, ErrUserNotFound)
	}

	meeting := s.provisioner.Provision(ctx, MeetingRequest{
		Teacher:  teacher,
		Learner:  learner,
		SkillID:  session.SkillID,
		Start:    session.ScheduledTime,
		Duration: session.Duration,
	})
	session.ApplyMeeting(meeting)

	return nil
}

// GetByID получает сессию по ID
func (s *SessionService) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) GetAll(ctx context.Context) ([]*model.Session, error) {
	return s.sessionRepo.List(ctx, model.SessionFilter{})
}

func (s *SessionService) GetByTeacher(ctx context.Context, teacherID int64) ([]*model.Session, error) {
	return s.sessionRepo.List(ctx, model.SessionFilter{TeacherID: teacherID})
}

func (s *SessionService) GetByLearner(ctx context.Context, learnerID int64) ([]*model.Session, error) {
	return s.sessionRepo.List(ctx, model.SessionFilter{LearnerID: learnerID})
}

func (s *SessionService) GetByStatus(ctx context.Context, status model.SessionStatus) ([]*model.Session, error) {
	return s.sessionRepo.List(ctx, model.SessionFilter{Statuses: []model.SessionStatus{status}})
}

// GetUpcomingForUser возвращает предстоящие сессии пользователя по возрастанию времени
func (s *SessionService) GetUpcomingForUser(ctx context.Context, userID int64) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.ListForUser(ctx, userID, model.UpcomingStatuses)
	if err != nil {
		return nil, fmt.Errorf("list upcoming sessions: %w", err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].ScheduledTime.Before(sessions[j].ScheduledTime)
	})

	return sessions, nil
}

// UpdateStatus меняет статус сессии по таблице переходов
func (s *SessionService) UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) (*model.Session, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown session status %q", ErrInvalidRequest, status)
	}

	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: session %s -> %s", ErrInvalidState, session.Status, status)
	}

	ok, err := s.sessionRepo.UpdateStatus(ctx, id, session.Status, status)
	if err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: session %d changed concurrently", ErrInvalidState, id)
	}

	s.logger.Info("Session status updated",
		zap.Int64("session_id", id),
		zap.String("from", string(session.Status)),
		zap.String("to", string(status)),
	)

	return s.GetByID(ctx, id)
}

// Update частично обновляет сессию. Перевод в virtual без встречи создаёт встречу,
// перевод в in_person удаляет поля встречи.
func (s *SessionService) Update(ctx context.Context, id int64, upd model.SessionUpdate) (*model.Session, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ScheduledTime != nil && !upd.ScheduledTime.IsZero() {
		session.ScheduledTime = *upd.ScheduledTime
	}
	if upd.Duration != nil {
		if *upd.Duration <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
		}
		session.Duration = *upd.Duration
	}
	if upd.Status != "" && upd.Status != session.Status {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown session status %q", ErrInvalidRequest, upd.Status)
		}
		if !session.Status.CanTransition(upd.Status) {
			return nil, fmt.Errorf("%w: session %s -> %s", ErrInvalidState, session.Status, upd.Status)
		}
		session.Status = upd.Status
	}
	if upd.Location != "" {
		session.Location = upd.Location
	}
	if upd.SessionType != "" {
		if upd.SessionType != model.SessionTypeVirtual && upd.SessionType != model.SessionTypeInPerson {
			return nil, fmt.Errorf("%w: unknown session type %q", ErrInvalidRequest, upd.SessionType)
		}
		session.SessionType = upd.SessionType
	}

	switch {
	case session.IsVirtual() && !session.HasMeeting():
		if err := s.provision(ctx, session); err != nil {
			return nil, err
		}
	case !session.IsVirtual():
		session.ClearMeeting()
	}

	session.UpdatedAt = s.now()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return session, nil
}

// discard удаляет только что созданную сессию (компенсация неудачного одобрения)
func (s *SessionService) discard(ctx context.Context, id int64) {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to discard session", zap.Int64("session_id", id), zap.Error(err))
		return
	}
	s.logger.Warn("Session discarded", zap.Int64("session_id", id))
}

func validateSession(session *model.Session) error {
	if session.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}
	if session.SessionType != model.SessionTypeVirtual && session.SessionType != model.SessionTypeInPerson {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidRequest, session.SessionType)
	}
	return nil
}
