package gormstore

import (
	"context"
	"errors"
	"time"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"gorm.io/gorm"
)

type ParticipantRepositoryImpl struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &ParticipantRepositoryImpl{db: db}
}

func (r *ParticipantRepositoryImpl) Create(ctx context.Context, participant *models.Participant) error {
	err := r.db.WithContext(ctx).Create(participant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrParticipantExists
	}
	return err
}

func (r *ParticipantRepositoryImpl) FindByName(ctx context.Context, name string) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.WithContext(ctx).First(&participant, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepositoryImpl) FindAll(ctx context.Context) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).Order("name ASC").Find(&participants).Error
	return participants, err
}

func (r *ParticipantRepositoryImpl) Touch(ctx context.Context, name string, lastStatus time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("name = ?", name).
		Update("last_status", lastStatus.UnixMilli())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL не считает строку измененной, если значение то же самое
		if _, err := r.FindByName(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (r *ParticipantRepositoryImpl) DeleteIdle(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("name = ? AND last_status < ?", name, cutoff.UnixMilli()).
		Delete(&models.Participant{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
