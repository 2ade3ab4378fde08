//go:generate go run go.uber.org/mock/mockgen -source=participant_repository.go -destination=mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"context"
	"errors"
	"time"

	"chatroom_backend/internal/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already exists")
)

// ParticipantRepository - реестр активных участников.
// Уникальность имени обеспечивается самим хранилищем (уникальный ключ),
// без кэша в памяти процесса.
type ParticipantRepository interface {
	// Create добавляет участника, ErrParticipantExists если имя занято
	Create(ctx context.Context, participant *models.Participant) error
	FindByName(ctx context.Context, name string) (*models.Participant, error)
	FindAll(ctx context.Context) ([]models.Participant, error)
	// Touch обновляет lastStatus, ErrParticipantNotFound если участника нет
	Touch(ctx context.Context, name string, lastStatus time.Time) error
	// DeleteIdle удаляет участника, только если его lastStatus старше cutoff.
	// Возвращает false, если удалять было нечего.
	DeleteIdle(ctx context.Context, name string, cutoff time.Time) (bool, error)
}
