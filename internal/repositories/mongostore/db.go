package mongostore

import (
	"context"
	"fmt"
	"time"

	"chatroom_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	participantsCollection = "participants"
	messagesCollection     = "messages"
	connectTimeout         = 10 * time.Second
)

// Open подключается к MongoDB и создает уникальный индекс по имени участника
func Open(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo unavailable: %w", err)
	}

	db := client.Database(database)
	_, err = db.Collection(participantsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create participants index: %w", err)
	}
	return db, nil
}

// NewStore собирает репозитории поверх базы
func NewStore(db *mongo.Database) repositories.Store {
	return repositories.Store{
		Participants: NewParticipantRepository(db),
		Messages:     NewMessageRepository(db),
		Close: func() error {
			return db.Client().Disconnect(context.Background())
		},
	}
}
