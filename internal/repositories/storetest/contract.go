// Package storetest содержит общие проверки для всех реализаций хранилища.
package storetest

import (
	"context"
	"testing"
	"time"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"github.com/stretchr/testify/require"
)

// Run прогоняет контракт repositories.Store на свежем хранилище.
// newStore должен возвращать пустое хранилище.
func Run(t *testing.T, newStore func(t *testing.T) repositories.Store) {
	t.Run("participant unique name", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()
		store := newStore(t)

		req.NoError(store.Participants.Create(ctx, &models.Participant{Name: "Alice", LastStatus: 1}))
		req.ErrorIs(store.Participants.Create(ctx, &models.Participant{Name: "Alice", LastStatus: 2}), repositories.ErrParticipantExists)

		all, err := store.Participants.FindAll(ctx)
		req.NoError(err)
		req.Len(all, 1)
	})

	t.Run("participant touch and conditional delete", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()
		store := newStore(t)
		base := time.UnixMilli(1_700_000_000_000)

		req.NoError(store.Participants.Create(ctx, &models.Participant{Name: "Bob", LastStatus: base.UnixMilli()}))
		req.ErrorIs(store.Participants.Touch(ctx, "Ghost", base), repositories.ErrParticipantNotFound)
		req.NoError(store.Participants.Touch(ctx, "Bob", base.Add(time.Second)))

		deleted, err := store.Participants.DeleteIdle(ctx, "Bob", base.Add(time.Second))
		req.NoError(err)
		req.False(deleted)

		deleted, err = store.Participants.DeleteIdle(ctx, "Bob", base.Add(2*time.Second))
		req.NoError(err)
		req.True(deleted)

		_, err = store.Participants.FindByName(ctx, "Bob")
		req.ErrorIs(err, repositories.ErrParticipantNotFound)
	})

	t.Run("message lifecycle", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()
		store := newStore(t)

		texts := []string{"first", "second", "third"}
		var ids []string
		for _, text := range texts {
			m := &models.Message{From: "Alice", To: models.BroadcastTarget, Text: text, Type: models.MessageTypeMessage, Time: "09:00:00"}
			req.NoError(store.Messages.Create(ctx, m))
			req.NotEmpty(m.ID)
			ids = append(ids, m.ID)
		}

		updated, err := store.Messages.Update(ctx, ids[1], models.MessageUpdate{
			To: "Bob", Text: "edited", Type: models.MessageTypePrivateMessage, Time: "09:00:01",
		})
		req.NoError(err)
		req.Equal(ids[1], updated.ID)
		req.Equal("Alice", updated.From)
		req.Equal("Bob", updated.To)

		req.NoError(store.Messages.Delete(ctx, ids[0]))
		req.ErrorIs(store.Messages.Delete(ctx, ids[0]), repositories.ErrMessageNotFound)
		_, err = store.Messages.FindByID(ctx, ids[0])
		req.ErrorIs(err, repositories.ErrMessageNotFound)
		_, err = store.Messages.FindByID(ctx, "not-an-id")
		req.ErrorIs(err, repositories.ErrMessageNotFound)

		all, err := store.Messages.FindAll(ctx)
		req.NoError(err)
		req.Len(all, 2)
		req.Equal("edited", all[0].Text)
		req.Equal("third", all[1].Text)
	})
}
