package gormstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chatroom_backend/internal/models"

	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/repositories/storetest"

	"github.com/stretchr/testify/require"
)

// Требует TEST_POSTGRES_DSN, например
// host=localhost user=postgres password=postgres dbname=chat_test sslmode=disable
func TestStoreContract_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) repositories.Store {
		db, err := Open("postgres", dsn)
		require.NoError(t, err)
		require.NoError(t, db.Exec("TRUNCATE participants, messages RESTART IDENTITY").Error)

		store := NewStore(db)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func newSQLiteStore(t *testing.T) repositories.Store {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)

	store := NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreContract_SQLite(t *testing.T) {
	storetest.Run(t, newSQLiteStore)
}

func TestMessageRepository_OrderBySeq(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newSQLiteStore(t)

	for _, text := range []string{"b", "a", "c"} {
		req.NoError(store.Messages.Create(ctx, &models.Message{
			From: "Alice", To: models.BroadcastTarget, Text: text, Type: models.MessageTypeMessage, Time: "10:00:00",
		}))
	}

	all, err := store.Messages.FindAll(ctx)
	req.NoError(err)
	req.Len(all, 3)
	req.Equal([]string{"b", "a", "c"}, []string{all[0].Text, all[1].Text, all[2].Text})
	req.Less(all[0].Seq, all[1].Seq)
	req.Less(all[1].Seq, all[2].Seq)
}

func TestParticipantRepository_DeleteIdleKeepsRefreshed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newSQLiteStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	req.NoError(store.Participants.Create(ctx, &models.Participant{Name: "Alice", LastStatus: base.UnixMilli()}))
	cutoff := models.IdleCutoff(base.Add(10*time.Second+500*time.Microsecond), 10*time.Second)

	// heartbeat между чтением списка и удалением
	req.NoError(store.Participants.Touch(ctx, "Alice", base.Add(10*time.Second)))
	deleted, err := store.Participants.DeleteIdle(ctx, "Alice", cutoff)
	req.NoError(err)
	req.False(deleted)

	deleted, err = store.Participants.DeleteIdle(ctx, "Ghost", cutoff)
	req.NoError(err)
	req.False(deleted)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "file.db")
	require.Error(t, err)
}
