package mongostore

import (
	"context"
	"errors"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// messageDocument хранится в коллекции messages.
// ObjectID монотонно растет внутри процесса, по нему сортируется журнал.
type messageDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	From string             `bson:"from"`
	To   string             `bson:"to"`
	Text string             `bson:"text"`
	Type string             `bson:"type"`
	Time string             `bson:"time"`
}

type MessageRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) repositories.MessageRepository {
	return &MessageRepositoryImpl{collection: db.Collection(messagesCollection)}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *models.Message) error {
	doc := fromMessage(message)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	message.ID = doc.ID.Hex()
	return nil
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Message, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrMessageNotFound
	}
	var doc messageDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrMessageNotFound
		}
		return nil, err
	}
	return toMessage(doc), nil
}

func (r *MessageRepositoryImpl) Update(ctx context.Context, id string, update models.MessageUpdate) (*models.Message, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrMessageNotFound
	}
	var doc messageDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"to":   update.To,
			"text": update.Text,
			"type": string(update.Type),
			"time": update.Time,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrMessageNotFound
		}
		return nil, err
	}
	return toMessage(doc), nil
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrMessageNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context) ([]models.Message, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, *toMessage(doc))
	}
	return messages, nil
}

func fromMessage(message *models.Message) messageDocument {
	return messageDocument{
		From: message.From,
		To:   message.To,
		Text: message.Text,
		Type: string(message.Type),
		Time: message.Time,
	}
}

func toMessage(doc messageDocument) *models.Message {
	return &models.Message{
		ID:   doc.ID.Hex(),
		From: doc.From,
		To:   doc.To,
		Text: doc.Text,
		Type: models.MessageType(doc.Type),
		Time: doc.Time,
	}
}
