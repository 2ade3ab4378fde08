package mongostore

import (
	"context"
	"errors"
	"time"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type participantDocument struct {
	Name       string `bson:"name"`
	LastStatus int64  `bson:"lastStatus"`
}

type ParticipantRepositoryImpl struct {
	collection *mongo.Collection
}

func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &ParticipantRepositoryImpl{collection: db.Collection(participantsCollection)}
}

func (r *ParticipantRepositoryImpl) Create(ctx context.Context, participant *models.Participant) error {
	_, err := r.collection.InsertOne(ctx, participantDocument{
		Name:       participant.Name,
		LastStatus: participant.LastStatus,
	})
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrParticipantExists
	}
	return err
}

func (r *ParticipantRepositoryImpl) FindByName(ctx context.Context, name string) (*models.Participant, error) {
	var doc participantDocument
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrParticipantNotFound
		}
		return nil, err
	}
	return &models.Participant{Name: doc.Name, LastStatus: doc.LastStatus}, nil
}

func (r *ParticipantRepositoryImpl) FindAll(ctx context.Context) ([]models.Participant, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []participantDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(docs))
	for _, doc := range docs {
		participants = append(participants, models.Participant{Name: doc.Name, LastStatus: doc.LastStatus})
	}
	return participants, nil
}

func (r *ParticipantRepositoryImpl) Touch(ctx context.Context, name string, lastStatus time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastStatus": lastStatus.UnixMilli()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepositoryImpl) DeleteIdle(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"name":       name,
		"lastStatus": bson.M{"$lt": cutoff.UnixMilli()},
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
