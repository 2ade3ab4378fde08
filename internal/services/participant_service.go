package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/pkg/apperrors"
)

type ParticipantService interface {
	Register(ctx context.Context, name string) (*models.Participant, error)
	List(ctx context.Context) ([]models.Participant, error)
	Heartbeat(ctx context.Context, name string) error
	IsActive(ctx context.Context, name string) (bool, error)

	// Evict удаляет участника, если он все еще простаивает дольше cutoff,
	// и объявляет о его уходе. false - удалять было нечего.
	Evict(ctx context.Context, name string, cutoff time.Time) (bool, error)
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	messageRepo     repositories.MessageRepository
	publisher       Publisher
	now             Clock
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	messageRepo repositories.MessageRepository,
	publisher Publisher,
	clock Clock,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
		publisher:       orNop(publisher),
		now:             orNow(clock),
	}
}

func (s *participantService) Register(ctx context.Context, name string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError(map[string]string{"name": "This field is required"})
	}
	if models.IsReservedName(name) {
		return nil, apperrors.ErrReservedName
	}

	now := s.now()
	participant := &models.Participant{Name: name, LastStatus: now.UnixMilli()}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantExists) {
			return nil, apperrors.ErrParticipantExists
		}
		return nil, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "Participant registered", "name", name)

	// Объявление пишется отдельно, регистрация при ошибке не откатывается
	status := models.NewStatusMessage(name, models.StatusTextJoined, now)
	if err := s.messageRepo.Create(ctx, status); err != nil {
		logger.CtxWithError(ctx, "Failed to announce participant", err, "name", name)
		return nil, apperrors.InternalError(err)
	}
	s.publisher.Publish(models.FeedEvent{Event: models.FeedEventCreated, Message: *status})

	return participant, nil
}

func (s *participantService) List(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	return participants, nil
}

func (s *participantService) Heartbeat(ctx context.Context, name string) error {
	err := s.participantRepo.Touch(ctx, strings.TrimSpace(name), s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return apperrors.ErrParticipantNotFound
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *participantService) IsActive(ctx context.Context, name string) (bool, error) {
	_, err := s.participantRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return false, nil
		}
		return false, apperrors.DatabaseError(err)
	}
	return true, nil
}

func (s *participantService) Evict(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	deleted, err := s.participantRepo.DeleteIdle(ctx, name, cutoff)
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	if !deleted {
		return false, nil
	}

	status := models.NewStatusMessage(name, models.StatusTextLeft, s.now())
	if err := s.messageRepo.Create(ctx, status); err != nil {
		return true, apperrors.InternalError(err)
	}
	s.publisher.Publish(models.FeedEvent{Event: models.FeedEventCreated, Message: *status})
	return true, nil
}
