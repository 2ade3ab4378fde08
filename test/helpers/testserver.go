package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"chatroom_backend/internal/app"
	"chatroom_backend/internal/config"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/repositories/badgerstore"
)

// Clock - управляемые часы для тестов
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Store  repositories.Store
	Clock  *Clock
}

// NewTestServer поднимает приложение поверх badger в памяти.
// Воркер не запускается: тесты вызывают App.Reaper.Sweep сами.
func NewTestServer(t *testing.T, configure ...func(cfg *config.Config)) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = config.DriverBadger
	cfg.Database.InMemory = true
	for _, fn := range configure {
		fn(cfg)
	}

	db, err := badgerstore.Open("", true)
	if err != nil {
		t.Fatalf("Не удалось открыть badger: %v", err)
	}
	store, err := badgerstore.NewStore(db)
	if err != nil {
		t.Fatalf("Не удалось создать хранилище: %v", err)
	}

	clock := NewClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	application := app.New(cfg, store, clock.Now)

	ctx, cancel := context.WithCancel(context.Background())
	go application.Feed.Run(ctx)

	server := httptest.NewServer(application.Router)
	ts := &TestServer{Server: server, App: application, Store: store, Clock: clock}

	t.Cleanup(func() {
		server.Close()
		cancel()
		_ = store.Close()
	})
	return ts
}

// SendRequest отправляет запрос от имени user (пустая строка - без заголовка)
func (ts *TestServer) SendRequest(t *testing.T, method, path, user string, body interface{}) (*http.Response, string) {
	t.Helper()
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reqBody = bytes.NewBufferString(raw)
		} else {
			jsonBody, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
			}
			reqBody = bytes.NewBuffer(jsonBody)
		}
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if user != "" {
		req.Header.Set("user", user)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBodyBytes)
}
