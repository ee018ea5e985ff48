package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/denmor86/ya-cryptowallet/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrInvalidCredentials   = errors.New("no account with these credentials")
	ErrAlreadyLoggedIn      = errors.New("account is already logged in")
	ErrNotLoggedIn          = errors.New("account is not logged in")
	ErrLoginFailed          = errors.New("failed to validate credentials")
	// ErrStorage - сбой хранилища, сервер дальше работать не может
	ErrStorage = errors.New("accounts storage failure")
)

// Accounts - реестр аккаунтов и множество вошедших в систему.
// Используется только из горутины цикла событий, блокировки не нужны.
type Accounts struct {
	Storage  storage.AccountsStorage
	hashCost int
	accounts map[string]*models.Account
	loggedIn map[string]struct{}
}

// Создание реестра
func NewAccounts(storage storage.AccountsStorage, hashCost int) *Accounts {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &Accounts{
		Storage:  storage,
		hashCost: hashCost,
		accounts: make(map[string]*models.Account),
		loggedIn: make(map[string]struct{}),
	}
}

// Load - загрузка сохранённых аккаунтов
func (s *Accounts) Load(ctx context.Context) error {
	accounts, err := s.Storage.LoadAccounts(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	for _, account := range accounts {
		s.accounts[account.Username] = account
	}
	logger.Info("Accounts loaded:", len(s.accounts))
	return nil
}

// Register - создание аккаунта, пароль хранится в виде bcrypt хэша
func (s *Accounts) Register(ctx context.Context, username string, password string) error {
	if _, ok := s.accounts[username]; ok {
		logger.Warn("Account already exist", username)
		return ErrAccountAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		logger.Error("Error generating password hash", err)
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	account := models.NewAccount(uuid.New().String(), username, string(hashedPassword))
	s.accounts[username] = account
	if err := s.Persist(ctx); err != nil {
		delete(s.accounts, username)
		return err
	}
	logger.Info("Account registered", username)
	return nil
}

// Login - проверка пароля и отметка о входе, одна активная сессия на аккаунт
func (s *Accounts) Login(ctx context.Context, username string, password string) (*models.Account, error) {
	account, ok := s.accounts[username]
	if !ok {
		logger.Warn("Login of unknown account", username)
		return nil, ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		logger.Warn("Invalid password", username)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		logger.Error("Error validating password", username, err)
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	if s.IsLoggedIn(account) {
		logger.Warn("Account is already in use", username)
		return nil, ErrAlreadyLoggedIn
	}

	s.loggedIn[username] = struct{}{}
	if err := s.Persist(ctx); err != nil {
		delete(s.loggedIn, username)
		return nil, err
	}
	logger.Info("Account logged in", username)
	return account, nil
}

// Logout - снятие отметки о входе
func (s *Accounts) Logout(account *models.Account) {
	if account == nil {
		return
	}
	if _, ok := s.loggedIn[account.Username]; ok {
		delete(s.loggedIn, account.Username)
		logger.Info("Account logged out", account.Username)
	}
}

func (s *Accounts) IsLoggedIn(account *models.Account) bool {
	if account == nil {
		return false
	}
	_, ok := s.loggedIn[account.Username]
	return ok
}

// LoggedAccount - аккаунт сессии, если он всё ещё в системе
func (s *Accounts) LoggedAccount(account *models.Account) (*models.Account, error) {
	if !s.IsLoggedIn(account) {
		return nil, ErrNotLoggedIn
	}
	return s.accounts[account.Username], nil
}

// Persist - полная перезапись набора аккаунтов в хранилище
func (s *Accounts) Persist(ctx context.Context) error {
	accounts := make([]*models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})
	if err := s.Storage.SaveAccounts(ctx, accounts); err != nil {
		logger.Error("Failed to save accounts", err)
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Close - финальное сохранение и закрытие хранилища
func (s *Accounts) Close(ctx context.Context) error {
	s.loggedIn = make(map[string]struct{})
	persistErr := s.Persist(ctx)
	return errors.Join(persistErr, s.Storage.Close())
}

func (s *Accounts) Len() int {
	return len(s.accounts)
}
