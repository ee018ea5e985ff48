package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/denmor86/ya-cryptowallet/internal/config"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
	"github.com/denmor86/ya-cryptowallet/internal/storage/mocks"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		name          string
		setupMocks    func()
		expectedLen   int
		expectedError error
	}{
		{
			name: "Load: Success #1",
			setupMocks: func() {
				mockStorage.EXPECT().LoadAccounts(gomock.Any()).Return([]*models.Account{
					models.NewAccount("1", "mda", "hash"),
					models.NewAccount("2", "other", "hash"),
				}, nil)
			},
			expectedLen: 2,
		},
		{
			name: "Load: Empty storage #2",
			setupMocks: func() {
				mockStorage.EXPECT().LoadAccounts(gomock.Any()).Return(nil, nil)
			},
			expectedLen: 0,
		},
		{
			name: "Load: Storage error #3",
			setupMocks: func() {
				mockStorage.EXPECT().LoadAccounts(gomock.Any()).Return(nil, errors.New("broken file"))
			},
			expectedError: ErrStorage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			accounts := NewAccounts(mockStorage, bcrypt.MinCost)

			err := accounts.Load(context.Background())
			if !errors.Is(err, tc.expectedError) {
				t.Fatalf("Expected error: '%v', got: '%v'", tc.expectedError, err)
			}
			if accounts.Len() != tc.expectedLen {
				t.Errorf("Expected %d accounts, got: %d", tc.expectedLen, accounts.Len())
			}
		})
	}
}

func TestRegisterAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		name          string
		setupMocks    func()
		expectedError error
		expectedLen   int
	}{
		{
			name: "Register Account: Success #1",
			setupMocks: func() {
				mockStorage.EXPECT().SaveAccounts(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			expectedLen: 1,
		},
		{
			name: "Register Account: Storage error #2",
			setupMocks: func() {
				mockStorage.EXPECT().SaveAccounts(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			expectedError: ErrStorage,
			expectedLen:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			accounts := NewAccounts(mockStorage, bcrypt.MinCost)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := accounts.Register(ctx, "mda", "test_pass")
			if !errors.Is(err, tc.expectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.expectedError, err)
			}
			if accounts.Len() != tc.expectedLen {
				t.Errorf("Expected %d accounts, got: %d", tc.expectedLen, accounts.Len())
			}
		})
	}

	t.Run("Register Account: ErrAccountAlreadyExists #3", func(t *testing.T) {
		mockStorage.EXPECT().SaveAccounts(gomock.Any(), gomock.Any()).Return(nil)
		accounts := NewAccounts(mockStorage, bcrypt.MinCost)
		ctx := context.Background()

		if err := accounts.Register(ctx, "mda", "test_pass"); err != nil {
			t.Fatalf("Expected no error, got: '%v'", err)
		}
		if err := accounts.Register(ctx, "mda", "other_pass"); !errors.Is(err, ErrAccountAlreadyExists) {
			t.Errorf("Expected error: '%v', got: '%v'", ErrAccountAlreadyExists, err)
		}
	})
}

func TestLoginAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("test_pass"), bcrypt.MinCost)

	testCases := []struct {
		name          string
		passwordHash  string
		username      string
		password      string
		loggedIn      bool
		setupMocks    func()
		expectedError error
	}{
		{
			name:         "Login: Success #1",
			passwordHash: string(passwordHash),
			username:     "mda",
			password:     "test_pass",
			setupMocks: func() {
				mockStorage.EXPECT().SaveAccounts(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:          "Login: Unknown account #2",
			passwordHash:  string(passwordHash),
			username:      "nobody",
			password:      "test_pass",
			setupMocks:    func() {},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "Login: Wrong password #3",
			passwordHash:  string(passwordHash),
			username:      "mda",
			password:      "wrong",
			setupMocks:    func() {},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "Login: Broken hash #4",
			passwordHash:  "not a bcrypt hash",
			username:      "mda",
			password:      "test_pass",
			setupMocks:    func() {},
			expectedError: ErrLoginFailed,
		},
		{
			name:          "Login: Already logged in #5",
			passwordHash:  string(passwordHash),
			username:      "mda",
			password:      "test_pass",
			loggedIn:      true,
			setupMocks:    func() {},
			expectedError: ErrAlreadyLoggedIn,
		},
		{
			name:         "Login: Storage error #6",
			passwordHash: string(passwordHash),
			username:     "mda",
			password:     "test_pass",
			setupMocks: func() {
				mockStorage.EXPECT().SaveAccounts(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			expectedError: ErrStorage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockStorage.EXPECT().LoadAccounts(gomock.Any()).Return([]*models.Account{
				models.NewAccount("1", "mda", tc.passwordHash),
			}, nil)
			accounts := NewAccounts(mockStorage, bcrypt.MinCost)
			if err := accounts.Load(context.Background()); err != nil {
				t.Fatalf("Expected no error, got: '%v'", err)
			}
			if tc.loggedIn {
				accounts.loggedIn["mda"] = struct{}{}
			}
			tc.setupMocks()

			account, err := accounts.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, tc.expectedError) {
				t.Fatalf("Expected error: '%v', got: '%v'", tc.expectedError, err)
			}
			if err == nil && (account == nil || account.Username != tc.username) {
				t.Errorf("Expected account '%s', got: '%v'", tc.username, account)
			}
			if tc.expectedError != nil && !tc.loggedIn && accounts.IsLoggedIn(models.NewAccount("", "mda", "")) {
				t.Errorf("Expected failed login to leave account logged out")
			}
		})
	}
}

func TestLogoutAndClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountsStorage(ctrl)
	mockStorage.EXPECT().SaveAccounts(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	mockStorage.EXPECT().Close().Return(nil)

	accounts := NewAccounts(mockStorage, bcrypt.MinCost)
	ctx := context.Background()

	if err := accounts.Register(ctx, "mda", "test_pass"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	account, err := accounts.Login(ctx, "mda", "test_pass")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if _, err := accounts.LoggedAccount(account); err != nil {
		t.Errorf("Expected logged account, got: '%v'", err)
	}

	accounts.Logout(account)
	if accounts.IsLoggedIn(account) {
		t.Errorf("Expected account to be logged out")
	}
	if _, err := accounts.LoggedAccount(account); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Expected error: '%v', got: '%v'", ErrNotLoggedIn, err)
	}
	accounts.Logout(nil)

	if err := accounts.Close(ctx); err != nil {
		t.Errorf("Expected no error, got: '%v'", err)
	}
}
