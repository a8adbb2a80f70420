package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/provider"
	"go.uber.org/zap"
)

const basicMeetingIDLength = 10

// MeetingRequest описывает встречу, которую нужно создать
type MeetingRequest struct {
	Teacher  *model.User
	Learner  *model.User
	SkillID  int64
	Start    time.Time
	Duration int // minutes
}

// provisioningStrategy - один уровень провижининга. Ошибка означает переход к следующему уровню.
type provisioningStrategy interface {
	Name() string
	Provision(ctx context.Context, req MeetingRequest) (*model.Meeting, error)
}

// MeetingProvisioningOptions configures MeetingProvisioner.
type MeetingProvisioningOptions struct {
	Credentials     provider.ClientCredentials
	CredentialsFile string
}

// MeetingProvisioner пытается создать настоящую встречу у провайдера
// и деградирует до синтетической ссылки, если это невозможно.
type MeetingProvisioner struct {
	calendar        CalendarProvider
	resolver        *CredentialResolver
	credentials     provider.ClientCredentials
	credentialsFile string
	strategies      []provisioningStrategy
	now             func() time.Time
	logger          *zap.Logger
}

func NewMeetingProvisioner(
	calendar CalendarProvider,
	resolver *CredentialResolver,
	opts MeetingProvisioningOptions,
	logger *zap.Logger,
) *MeetingProvisioner {
	p := &MeetingProvisioner{
		calendar:        calendar,
		resolver:        resolver,
		credentials:     opts.Credentials,
		credentialsFile: opts.CredentialsFile,
		now:             time.Now,
		logger:          logger,
	}

	// Порядок важен: календарь учителя, календарь ученика, синтетическая ссылка
	p.strategies = []provisioningStrategy{
		&calendarStrategy{p: p, organizer: organizerTeacher},
		&calendarStrategy{p: p, organizer: organizerLearner},
		&syntheticStrategy{p: p},
	}

	return p
}

// Provision возвращает встречу для двух участников. Никогда не возвращает nil.
func (p *MeetingProvisioner) Provision(ctx context.Context, req MeetingRequest) *model.Meeting {
	for _, strategy := range p.strategies {
		meeting, err := strategy.Provision(ctx, req)
		if err != nil {
			level := zap.WarnLevel
			if errors.Is(err, ErrProviderUnavailable) {
				level = zap.DebugLevel
			}
			if ce := p.logger.Check(level, "Provisioning tier failed"); ce != nil {
				ce.Write(
					zap.String("strategy", strategy.Name()),
					zap.Int64("teacher_id", req.Teacher.ID),
					zap.Int64("learner_id", req.Learner.ID),
					zap.Error(err),
				)
			}
			continue
		}

		fields := []zap.Field{
			zap.String("strategy", strategy.Name()),
			zap.String("tier", string(meeting.Tier)),
			zap.String("meeting_id", meeting.ID),
			zap.Int64("teacher_id", req.Teacher.ID),
			zap.Int64("learner_id", req.Learner.ID),
		}
		if meeting.IsReal() {
			p.logger.Info("Meeting provisioned", fields...)
		} else {
			p.logger.Warn("Meeting degraded to placeholder link", fields...)
		}
		return meeting
	}

	// Сюда попадаем только если даже синтетическая ссылка не сгенерировалась
	meeting := p.Basic()
	p.logger.Warn("Meeting degraded to basic link", zap.String("meeting_id", meeting.ID))
	return meeting
}

// Basic создаёт встречу со случайным идентификатором, не обращаясь к провайдеру
func (p *MeetingProvisioner) Basic() *model.Meeting {
	id := randomMeetingID(basicMeetingIDLength)
	return &model.Meeting{
		URL:  provider.MeetBaseURL + id,
		ID:   id,
		Tier: model.MeetingTierBasic,
	}
}

// TestCredentialLoading проверяет, что client credentials приложения загружаются
func (p *MeetingProvisioner) TestCredentialLoading() bool {
	if p.credentialsFile == "" {
		return p.credentials.Configured()
	}

	creds, err := provider.LoadClientCredentials(p.credentialsFile)
	if err != nil {
		p.logger.Error("Credentials loading test failed", zap.Error(err))
		return false
	}

	p.logger.Info("Credentials loaded", zap.String("client_id", creds.ClientID))
	return true
}

// TestConnectivity проверяет client credentials и возможность создать клиент календаря
func (p *MeetingProvisioner) TestConnectivity(ctx context.Context) bool {
	if !p.TestCredentialLoading() {
		return false
	}

	if err := p.calendar.CheckConnectivity(ctx); err != nil {
		p.logger.Error("Calendar connectivity test failed", zap.Error(err))
		return false
	}

	return true
}

// TestUserCalendarAccess проверяет, что токен пользователя даёт доступ к календарю
func (p *MeetingProvisioner) TestUserCalendarAccess(ctx context.Context, user *model.User) bool {
	if !user.HasCalendarAccess() {
		p.logger.Warn("User has no access token", zap.Int64("user_id", user.ID))
		return false
	}

	token, _, err := p.resolver.Resolve(ctx, user)
	if err != nil || token == "" {
		p.logger.Warn("Calendar access test failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return false
	}

	if _, err := p.calendar.ListUpcoming(ctx, token, 1); err != nil {
		p.logger.Warn("Calendar access test failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return false
	}

	return true
}

func (p *MeetingProvisioner) eventInput(req MeetingRequest, organizer *model.User) provider.EventInput {
	end := req.Start.Add(time.Duration(req.Duration) * time.Minute)

	return provider.EventInput{
		Summary: fmt.Sprintf("Skill Sharing: %d", req.SkillID),
		Description: fmt.Sprintf("Skill sharing session\n\nTeacher: %s (%s)\nLearner: %s (%s)",
			req.Teacher.FullName(), req.Teacher.Email,
			req.Learner.FullName(), req.Learner.Email),
		Start: req.Start,
		End:   end,
		Attendees: []provider.Attendee{
			{Email: req.Teacher.Email, DisplayName: req.Teacher.FullName(), Organizer: organizer.ID == req.Teacher.ID},
			{Email: req.Learner.Email, DisplayName: req.Learner.FullName(), Organizer: organizer.ID == req.Learner.ID},
		},
	}
}

type organizerRole string

const (
	organizerTeacher organizerRole = "teacher"
	organizerLearner organizerRole = "learner"
)

// calendarStrategy создаёт событие с конференцией в календаре одного из участников
type calendarStrategy struct {
	p         *MeetingProvisioner
	organizer organizerRole
}

func (s *calendarStrategy) Name() string {
	return "calendar:" + string(s.organizer)
}

func (s *calendarStrategy) Provision(ctx context.Context, req MeetingRequest) (*model.Meeting, error) {
	organizer := req.Teacher
	if s.organizer == organizerLearner {
		organizer = req.Learner
	}

	if !s.p.credentials.Configured() {
		return nil, fmt.Errorf("%w: no client credentials", ErrProviderUnavailable)
	}
	if !organizer.HasCalendarAccess() {
		return nil, fmt.Errorf("%w: %s has no access token", ErrProviderUnavailable, s.organizer)
	}

	token, _, err := s.p.resolver.Resolve(ctx, organizer)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: %s has no access token", ErrProviderUnavailable, s.organizer)
	}

	event, err := s.p.calendar.CreateEvent(ctx, token, s.p.eventInput(req, organizer))
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	url := event.VideoURI()
	if !provider.IsMeetURL(url) {
		return nil, ErrNoMeetingLink
	}

	return &model.Meeting{
		URL:         url,
		ID:          provider.MeetingCode(url),
		Password:    event.ConferenceID,
		Tier:        model.MeetingTierProvider,
		OrganizerID: organizer.ID,
	}, nil
}

// syntheticStrategy генерирует ссылку-заглушку с датой и случайным суффиксом
type syntheticStrategy struct {
	p *MeetingProvisioner
}

func (s *syntheticStrategy) Name() string {
	return "synthetic"
}

func (s *syntheticStrategy) Provision(_ context.Context, _ MeetingRequest) (*model.Meeting, error) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	id := fmt.Sprintf("ss-%s-%s", s.p.now().UTC().Format("20060102-1504"), suffix)

	return &model.Meeting{
		URL:  provider.MeetBaseURL + id,
		ID:   id,
		Tier: model.MeetingTierSynthetic,
	}, nil
}

// randomMeetingID генерирует строку из [a-z2-7] заданной длины
func randomMeetingID(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		id := uuid.New()
		bytes = id[:length]
	}

	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(bytes)
	return strings.ToLower(code[:length])
}
