package services

import (
	"time"

	"chatroom_backend/internal/models"
)

// Publisher доставляет события живой ленты. Publish не должен блокировать.
type Publisher interface {
	Publish(event models.FeedEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(models.FeedEvent) {}

// Clock - источник текущего времени, подменяется в тестах
type Clock func() time.Time

func orNow(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}
	return clock
}

func orNop(publisher Publisher) Publisher {
	if publisher == nil {
		return nopPublisher{}
	}
	return publisher
}
