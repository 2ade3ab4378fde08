package dto

import "strings"

// RegisterParticipantRequest - тело POST /participants
type RegisterParticipantRequest struct {
	Name string `json:"name" validate:"required,max=255,not-reserved-name"`
}

func (r *RegisterParticipantRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// HealthResponse - ответ GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
