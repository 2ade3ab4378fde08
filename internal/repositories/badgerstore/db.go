package badgerstore

import (
	"errors"
	"fmt"

	"chatroom_backend/internal/repositories"

	"github.com/dgraph-io/badger/v4"
)

const (
	participantPrefix = "participant:"
	messagePrefix     = "msg:"
	messageIDPrefix   = "msgid:"
	sequenceKey       = "seq:messages"
	sequenceBandwidth = 100
	maxTxnRetries     = 5
)

// Open открывает встроенное хранилище. При inMemory путь игнорируется.
func Open(path string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return db, nil
}

// NewStore собирает репозитории поверх badger. Close освобождает
// последовательность и закрывает базу.
func NewStore(db *badger.DB) (repositories.Store, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return repositories.Store{}, fmt.Errorf("failed to init message sequence: %w", err)
	}
	return repositories.Store{
		Participants: NewParticipantRepository(db),
		Messages:     NewMessageRepository(db, seq),
		Close: func() error {
			return errors.Join(seq.Release(), db.Close())
		},
	}, nil
}

// update повторяет транзакцию при конфликте параллельной записи
func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for range maxTxnRetries {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}
