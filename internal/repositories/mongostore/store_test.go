package mongostore

import (
	"context"
	"os"
	"testing"

	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/repositories/storetest"

	"github.com/stretchr/testify/require"
)

func TestStoreContract_Mongo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	storetest.Run(t, func(t *testing.T) repositories.Store {
		ctx := context.Background()
		db, err := Open(ctx, uri, "chatroom_test")
		require.NoError(t, err)
		_, err = db.Collection(participantsCollection).DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)
		_, err = db.Collection(messagesCollection).DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)

		store := NewStore(db)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}
