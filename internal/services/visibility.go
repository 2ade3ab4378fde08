package services

import (
	"chatroom_backend/internal/models"

	"github.com/samber/lo"
)

// VisibilityFilter решает, какие сообщения видит участник.
// Чистая функция над снимком журнала, хранилище не трогает.
type VisibilityFilter struct {
	// Legacy: любое сообщение типа message видно всем, независимо от to
	Legacy bool
}

func NewVisibilityFilter(legacy bool) VisibilityFilter {
	return VisibilityFilter{Legacy: legacy}
}

// CanSee - видит ли viewer сообщение
func (f VisibilityFilter) CanSee(viewer string, msg models.Message) bool {
	if msg.To == models.BroadcastTarget || msg.To == viewer || msg.From == viewer {
		return true
	}
	return f.Legacy && msg.Type == models.MessageTypeMessage
}

// Filter оставляет видимые сообщения в исходном порядке.
// limit > 0 - только последние limit из них, старые первыми.
func (f VisibilityFilter) Filter(messages []models.Message, viewer string, limit int) []models.Message {
	visible := lo.Filter(messages, func(msg models.Message, _ int) bool {
		return f.CanSee(viewer, msg)
	})
	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	return visible
}
