package storage

import (
	"context"
	"errors"

	"github.com/denmor86/ya-cryptowallet/internal/models"
)

//go:generate mockgen -source=storage.go -destination=mocks/storage_mock.go -package=mocks

// AccountsStorage - хранилище зарегистрированных аккаунтов.
// SaveAccounts всегда перезаписывает набор целиком.
type AccountsStorage interface {
	LoadAccounts(ctx context.Context) ([]*models.Account, error)
	SaveAccounts(ctx context.Context, accounts []*models.Account) error
	Close() error
}

var (
	ErrCorruptedStorage = errors.New("corrupted accounts storage")
)

// NewStorage - выбор хранилища: PostgreSQL, если задан DSN, иначе файл
func NewStorage(dsn string, path string) (AccountsStorage, error) {
	if dsn != "" {
		db, err := NewDatabase(dsn)
		if err != nil {
			return nil, err
		}
		if err := db.Initialize(); err != nil {
			db.Close()
			return nil, err
		}
		return NewAccountsDatabase(db), nil
	}
	return NewFileStorage(path)
}
