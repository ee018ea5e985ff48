package storage

import (
	"bufio"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/denmor86/ya-cryptowallet/internal/models"
)

// FileStorage - аккаунты в файле как поток gob записей, по одной на аккаунт
type FileStorage struct {
	Path string
}

// Создание файлового хранилища, каталог создаётся при необходимости
func NewFileStorage(path string) (*FileStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &FileStorage{Path: path}, nil
}

// LoadAccounts - чтение всех аккаунтов, отсутствующий файл - пустой набор
func (s *FileStorage) LoadAccounts(ctx context.Context) ([]*models.Account, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer file.Close()

	var accounts []*models.Account
	decoder := gob.NewDecoder(bufio.NewReader(file))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var account models.Account
		err := decoder.Decode(&account)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptedStorage, err)
		}
		if account.Holdings == nil {
			account.Holdings = make(map[string][]models.Lot)
		}
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

// SaveAccounts - полная перезапись файла через временный файл и rename
func (s *FileStorage) SaveAccounts(ctx context.Context, accounts []*models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmpPath := s.Path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create accounts file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := gob.NewEncoder(writer)
	for _, account := range accounts {
		if err = encoder.Encode(account); err != nil {
			break
		}
	}
	if err == nil {
		err = writer.Flush()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write accounts: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to replace accounts file: %w", err)
	}
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}
