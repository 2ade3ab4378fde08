package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	ParticipantService ParticipantService
	MessageService     MessageService
	VisibilityFilter   VisibilityFilter
}
