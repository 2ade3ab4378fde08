package badgerstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// messageRecord хранится под ключом msg:<seq>; msgid:<id> указывает на seq
type messageRecord struct {
	Seq  uint64 `json:"seq"`
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

type MessageRepositoryImpl struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewMessageRepository(db *badger.DB, seq *badger.Sequence) repositories.MessageRepository {
	return &MessageRepositoryImpl{db: db, seq: seq}
}

func messageKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%019d", messagePrefix, seq))
}

func messageIDKey(id string) []byte {
	return []byte(messageIDPrefix + id)
}

func (r *MessageRepositoryImpl) Create(_ context.Context, message *models.Message) error {
	next, err := r.seq.Next()
	if err != nil {
		return fmt.Errorf("next message seq: %w", err)
	}
	// Sequence начинается с нуля
	next++

	record := toRecord(message)
	record.Seq = next
	record.ID = uuid.NewString()

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, next)

	err = update(r.db, func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(next), data); err != nil {
			return err
		}
		return txn.Set(messageIDKey(record.ID), seqBytes)
	})
	if err != nil {
		return err
	}

	message.Seq = next
	message.ID = record.ID
	return nil
}

func (r *MessageRepositoryImpl) FindByID(_ context.Context, id string) (*models.Message, error) {
	var record *messageRecord
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = getRecord(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record.toMessage(), nil
}

func (r *MessageRepositoryImpl) Update(_ context.Context, id string, upd models.MessageUpdate) (*models.Message, error) {
	var message *models.Message
	err := update(r.db, func(txn *badger.Txn) error {
		record, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		message = record.toMessage()
		message.Apply(upd)

		data, err := json.Marshal(toRecord(message))
		if err != nil {
			return err
		}
		return txn.Set(messageKey(message.Seq), data)
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (r *MessageRepositoryImpl) Delete(_ context.Context, id string) error {
	return update(r.db, func(txn *badger.Txn) error {
		seq, err := getSeq(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(messageKey(seq)); err != nil {
			return err
		}
		return txn.Delete(messageIDKey(id))
	})
}

func (r *MessageRepositoryImpl) FindAll(_ context.Context) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(messagePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record messageRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			messages = append(messages, *record.toMessage())
		}
		return nil
	})
	return messages, err
}

func getSeq(txn *badger.Txn, id string) (uint64, error) {
	item, err := txn.Get(messageIDKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, repositories.ErrMessageNotFound
		}
		return 0, err
	}
	var seq uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupted index for message %s", id)
		}
		seq = binary.BigEndian.Uint64(val)
		return nil
	})
	return seq, err
}

func getRecord(txn *badger.Txn, id string) (*messageRecord, error) {
	seq, err := getSeq(txn, id)
	if err != nil {
		return nil, err
	}
	item, err := txn.Get(messageKey(seq))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, repositories.ErrMessageNotFound
		}
		return nil, err
	}
	var record messageRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	}); err != nil {
		return nil, err
	}
	return &record, nil
}

func toRecord(message *models.Message) messageRecord {
	return messageRecord{
		Seq:  message.Seq,
		ID:   message.ID,
		From: message.From,
		To:   message.To,
		Text: message.Text,
		Type: string(message.Type),
		Time: message.Time,
	}
}

func (r *messageRecord) toMessage() *models.Message {
	return &models.Message{
		Seq:  r.Seq,
		ID:   r.ID,
		From: r.From,
		To:   r.To,
		Text: r.Text,
		Type: models.MessageType(r.Type),
		Time: r.Time,
	}
}
