package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"

	"github.com/dgraph-io/badger/v4"
)

type ParticipantRepositoryImpl struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) repositories.ParticipantRepository {
	return &ParticipantRepositoryImpl{db: db}
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

func (r *ParticipantRepositoryImpl) Create(_ context.Context, participant *models.Participant) error {
	data, err := json.Marshal(participant)
	if err != nil {
		return err
	}
	return update(r.db, func(txn *badger.Txn) error {
		_, err := txn.Get(participantKey(participant.Name))
		if err == nil {
			return repositories.ErrParticipantExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(participantKey(participant.Name), data)
	})
}

func (r *ParticipantRepositoryImpl) FindByName(_ context.Context, name string) (*models.Participant, error) {
	var participant *models.Participant
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		participant, err = getParticipant(txn, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

func (r *ParticipantRepositoryImpl) FindAll(_ context.Context) ([]models.Participant, error) {
	participants := make([]models.Participant, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(participantPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p models.Participant
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return err
			}
			participants = append(participants, p)
		}
		return nil
	})
	return participants, err
}

func (r *ParticipantRepositoryImpl) Touch(_ context.Context, name string, lastStatus time.Time) error {
	return update(r.db, func(txn *badger.Txn) error {
		participant, err := getParticipant(txn, name)
		if err != nil {
			return err
		}
		participant.LastStatus = lastStatus.UnixMilli()
		data, err := json.Marshal(participant)
		if err != nil {
			return err
		}
		return txn.Set(participantKey(name), data)
	})
}

func (r *ParticipantRepositoryImpl) DeleteIdle(_ context.Context, name string, cutoff time.Time) (bool, error) {
	deleted := false
	err := update(r.db, func(txn *badger.Txn) error {
		deleted = false
		participant, err := getParticipant(txn, name)
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !participant.IdleSince(cutoff) {
			return nil
		}
		if err := txn.Delete(participantKey(name)); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func getParticipant(txn *badger.Txn, name string) (*models.Participant, error) {
	item, err := txn.Get(participantKey(name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, repositories.ErrParticipantNotFound
		}
		return nil, err
	}
	var p models.Participant
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &p)
	}); err != nil {
		return nil, err
	}
	return &p, nil
}
