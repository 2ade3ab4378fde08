package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	ParticipantHandler *ParticipantHandler
	MessageHandler     *MessageHandler
	HealthHandler      *HealthHandler
}
