package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"chatroom_backend/internal/models"

	"github.com/stretchr/testify/require"
)

// RegisterParticipant регистрирует участника и проверяет 201
func RegisterParticipant(t *testing.T, ts *TestServer, name string) {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/participants", "", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
}

// SendMessage отправляет сообщение и возвращает сохраненную запись
func SendMessage(t *testing.T, ts *TestServer, from, to, text string, typ models.MessageType) models.Message {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/messages", from, map[string]string{
		"to": to, "text": text, "type": string(typ),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	return DecodeJSON[models.Message](t, body)
}

// GetMessages возвращает сообщения, видимые viewer
func GetMessages(t *testing.T, ts *TestServer, viewer, query string) []models.Message {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodGet, "/messages"+query, viewer, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	return DecodeJSON[[]models.Message](t, body)
}

// UserMessages отбрасывает статусные сообщения
func UserMessages(messages []models.Message) []models.Message {
	out := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if !m.IsStatus() {
			out = append(out, m)
		}
	}
	return out
}

func DecodeJSON[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v), body)
	return v
}
