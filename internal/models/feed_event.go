package models

// FeedEventType - вид события живой ленты
type FeedEventType string

const (
	FeedEventCreated FeedEventType = "created"
	FeedEventUpdated FeedEventType = "updated"
	FeedEventDeleted FeedEventType = "deleted"
)

// FeedEvent рассылается подключенным websocket-клиентам
type FeedEvent struct {
	Event   FeedEventType `json:"event"`
	Message Message       `json:"message"`
}
