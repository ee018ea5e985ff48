package storage

import (
	"context"
	"fmt"

	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	SelectAccounts = `SELECT id, login, password, balance, next_lot_id FROM ACCOUNTS;`
	SelectLots     = `SELECT account_id, lot_id, code, quantity, price FROM LOTS ORDER BY account_id, lot_id;`
	UpsertAccount  = `INSERT INTO ACCOUNTS (id, login, password, balance, next_lot_id)
						VALUES ($1, $2, $3, $4, $5)
						ON CONFLICT (id) DO UPDATE
						SET password = EXCLUDED.password,
						    balance = EXCLUDED.balance,
						    next_lot_id = EXCLUDED.next_lot_id;`
	DeleteLots = `DELETE FROM LOTS WHERE account_id = $1;`
	InsertLot  = `INSERT INTO LOTS (account_id, lot_id, code, quantity, price) VALUES ($1, $2, $3, $4, $5);`
)

type AccountsDatabase struct {
	DB *Database
}

// Создание хранилища аккаунтов в PostgreSQL
func NewAccountsDatabase(db *Database) *AccountsDatabase {
	return &AccountsDatabase{DB: db}
}

func (s *AccountsDatabase) LoadAccounts(ctx context.Context) ([]*models.Account, error) {
	rows, err := s.DB.Pool.Query(ctx, SelectAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	var accounts []*models.Account
	byID := make(map[string]*models.Account)
	for rows.Next() {
		var (
			id       string
			login    string
			password string
			balance  decimal.Decimal
			nextLot  int64
		)
		if err := rows.Scan(&id, &login, &password, &balance, &nextLot); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed scan account: %w", err)
		}
		account := models.NewAccount(id, login, password)
		account.Balance = balance
		account.NextLotID = uint64(nextLot)
		accounts = append(accounts, account)
		byID[id] = account
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed read accounts: %w", err)
	}

	rows, err = s.DB.Pool.Query(ctx, SelectLots)
	if err != nil {
		return nil, fmt.Errorf("failed to get lots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			accountID string
			lotID     int64
			code      string
			quantity  decimal.Decimal
			price     decimal.Decimal
		)
		if err := rows.Scan(&accountID, &lotID, &code, &quantity, &price); err != nil {
			return nil, fmt.Errorf("failed scan lot: %w", err)
		}
		account, ok := byID[accountID]
		if !ok {
			return nil, fmt.Errorf("%w: lot %d of unknown account %s", ErrCorruptedStorage, lotID, accountID)
		}
		account.Holdings[code] = append(account.Holdings[code], models.Lot{
			ID:       uint64(lotID),
			Quantity: quantity,
			Price:    price,
		})
	}
	return accounts, rows.Err()
}

// SaveAccounts - перезапись аккаунтов и их покупок в одной транзакции
func (s *AccountsDatabase) SaveAccounts(ctx context.Context, accounts []*models.Account) (err error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("Save accounts. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(UpsertAccount, account.ID, account.Username, account.PasswordHash, account.Balance, int64(account.NextLotID))
		batch.Queue(DeleteLots, account.ID)
		for _, code := range account.Codes() {
			for _, lot := range account.Holdings[code] {
				batch.Queue(InsertLot, account.ID, int64(lot.ID), code, lot.Quantity, lot.Price)
			}
		}
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func (s *AccountsDatabase) Close() error {
	return s.DB.Close()
}
