package services

import (
	"context"
	"errors"
	"strings"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/services/dto"
	"chatroom_backend/pkg/apperrors"
)

type MessageService interface {
	Create(ctx context.Context, sender string, req *dto.MessageRequest) (*models.Message, error)
	Update(ctx context.Context, sender, id string, req *dto.MessageRequest) (*models.Message, error)
	Delete(ctx context.Context, sender, id string) error
	List(ctx context.Context, viewer string, limit int) ([]models.Message, error)
}

// messageService проверяет и продлевает присутствие отправителя
// только через ParticipantService.
type messageService struct {
	messageRepo  repositories.MessageRepository
	participants ParticipantService
	filter       VisibilityFilter
	publisher    Publisher
	now          Clock
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	participants ParticipantService,
	filter VisibilityFilter,
	publisher Publisher,
	clock Clock,
) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		participants: participants,
		filter:       filter,
		publisher:    orNop(publisher),
		now:          orNow(clock),
	}
}

func (s *messageService) Create(ctx context.Context, sender string, req *dto.MessageRequest) (*models.Message, error) {
	sender = strings.TrimSpace(sender)
	if err := s.requireActive(ctx, sender); err != nil {
		return nil, err
	}

	now := s.now()
	message := &models.Message{
		From: sender,
		To:   req.To,
		Text: req.Text,
		Type: req.Type,
		Time: now.Format(models.TimeLayout),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	s.touch(ctx, sender)
	s.publisher.Publish(models.FeedEvent{Event: models.FeedEventCreated, Message: *message})
	return message, nil
}

func (s *messageService) Update(ctx context.Context, sender, id string, req *dto.MessageRequest) (*models.Message, error) {
	sender = strings.TrimSpace(sender)
	if err := s.requireActive(ctx, sender); err != nil {
		return nil, err
	}
	if _, err := s.findOwned(ctx, sender, id); err != nil {
		return nil, err
	}

	updated, err := s.messageRepo.Update(ctx, id, models.MessageUpdate{
		To:   req.To,
		Text: req.Text,
		Type: req.Type,
		Time: s.now().Format(models.TimeLayout),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.touch(ctx, sender)
	s.publisher.Publish(models.FeedEvent{Event: models.FeedEventUpdated, Message: *updated})
	return updated, nil
}

func (s *messageService) Delete(ctx context.Context, sender, id string) error {
	message, err := s.findOwned(ctx, strings.TrimSpace(sender), id)
	if err != nil {
		return err
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return apperrors.DatabaseError(err)
	}

	s.publisher.Publish(models.FeedEvent{Event: models.FeedEventDeleted, Message: *message})
	return nil
}

func (s *messageService) List(ctx context.Context, viewer string, limit int) ([]models.Message, error) {
	messages, err := s.messageRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.filter.Filter(messages, strings.TrimSpace(viewer), limit), nil
}

// requireActive - отправитель должен быть активным участником (422)
func (s *messageService) requireActive(ctx context.Context, sender string) error {
	if sender == "" {
		return apperrors.ErrInactiveSender
	}
	active, err := s.participants.IsActive(ctx, sender)
	if err != nil {
		return err
	}
	if !active {
		return apperrors.ErrInactiveSender
	}
	return nil
}

// findOwned: сначала существование (404), потом владение (401)
func (s *messageService) findOwned(ctx context.Context, sender, id string) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if message.From != sender || message.IsStatus() {
		return nil, apperrors.ErrNotMessageOwner
	}
	return message, nil
}

// touch продлевает присутствие отправителя, ошибки только логируются
func (s *messageService) touch(ctx context.Context, sender string) {
	if err := s.participants.Heartbeat(ctx, sender); err != nil {
		logger.CtxWithError(ctx, "Failed to refresh sender presence", err, "sender", sender)
	}
}
