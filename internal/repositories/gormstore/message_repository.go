package gormstore

import (
	"context"
	"errors"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *models.Message) error {
	message.Seq = 0
	message.ID = uuid.NewString()
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) Update(ctx context.Context, id string, update models.MessageUpdate) (*models.Message, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"to_name": update.To,
			"text":    update.Text,
			"type":    update.Type,
			"time":    update.Time,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	// RowsAffected == 0 возможен и для существующей строки (MySQL), поэтому перечитываем
	return r.FindByID(ctx, id)
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Order("seq ASC").Find(&messages).Error
	return messages, err
}
