package dto

import (
	"strings"

	"chatroom_backend/internal/models"
)

// MessageRequest - тело POST /messages и PUT /messages/:id
type MessageRequest struct {
	To   string             `json:"to" validate:"required"`
	Text string             `json:"text" validate:"required"`
	Type models.MessageType `json:"type" validate:"required,is-message-type"`
}

func (r *MessageRequest) Normalize() {
	r.To = strings.TrimSpace(r.To)
	r.Text = strings.TrimSpace(r.Text)
	r.Type = models.MessageType(strings.TrimSpace(string(r.Type)))
}
