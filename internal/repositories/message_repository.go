//go:generate go run go.uber.org/mock/mockgen -source=message_repository.go -destination=mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"errors"

	"chatroom_backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository - журнал сообщений в порядке вставки
type MessageRepository interface {
	// Create присваивает ID и порядковый номер и сохраняет сообщение
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id string) (*models.Message, error)
	// Update заменяет изменяемые поля и возвращает обновленную запись
	Update(ctx context.Context, id string, update models.MessageUpdate) (*models.Message, error)
	Delete(ctx context.Context, id string) error
	// FindAll возвращает все сообщения, старые первыми
	FindAll(ctx context.Context) ([]models.Message, error)
}

// Store объединяет репозитории одного хранилища
type Store struct {
	Participants ParticipantRepository
	Messages     MessageRepository
	Close        func() error
}
