package ws

import (
	"context"
	"sync"

	"chatroom_backend/internal/logger"
	"chatroom_backend/internal/models"
)

const broadcastBuffer = 256

// Visibility решает, кому из подключенных показывать сообщение
type Visibility interface {
	CanSee(viewer string, msg models.Message) bool
}

// WebSocketManager держит подключенных клиентов и рассылает им события
// ленты с учетом видимости. Реализует services.Publisher.
type WebSocketManager struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan models.FeedEvent
	done       chan struct{}
	mu         sync.RWMutex

	visibility Visibility
}

func NewWebSocketManager(visibility Visibility) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.FeedEvent, broadcastBuffer),
		done:       make(chan struct{}),
		visibility: visibility,
	}
}

// Run обслуживает регистрацию и рассылку до отмены ctx
func (manager *WebSocketManager) Run(ctx context.Context) {
	defer close(manager.done)
	for {
		select {
		case <-ctx.Done():
			manager.closeAll()
			return

		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client] = struct{}{}
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Debug("WebSocket client registered", "viewer", client.Viewer, "total", total)

		case client := <-manager.unregister:
			manager.remove(client)

		case event := <-manager.broadcast:
			manager.broadcastEvent(event)
		}
	}
}

// Publish ставит событие в очередь рассылки. Если очередь заполнена,
// событие отбрасывается: лента не должна тормозить запись сообщений.
func (manager *WebSocketManager) Publish(event models.FeedEvent) {
	select {
	case manager.broadcast <- event:
	default:
		logger.Warn("WebSocket feed queue is full, event dropped", "event", event.Event, "id", event.Message.ID)
	}
}

// join регистрирует клиента; false, если менеджер уже остановлен
func (manager *WebSocketManager) join(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) leave(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// ClientCount - число подключенных клиентов
func (manager *WebSocketManager) ClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

func (manager *WebSocketManager) broadcastEvent(event models.FeedEvent) {
	var slow []*Client

	manager.mu.RLock()
	for client := range manager.clients {
		if !manager.visibility.CanSee(client.Viewer, event.Message) {
			continue
		}
		select {
		case client.Send <- event:
		default:
			slow = append(slow, client)
		}
	}
	manager.mu.RUnlock()

	for _, client := range slow {
		logger.Warn("WebSocket client too slow, disconnecting", "viewer", client.Viewer)
		manager.remove(client)
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if _, ok := manager.clients[client]; ok {
		close(client.Send)
		delete(manager.clients, client)
		logger.Debug("WebSocket client unregistered", "viewer", client.Viewer, "total", len(manager.clients))
	}
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for client := range manager.clients {
		close(client.Send)
		delete(manager.clients, client)
	}
}
