package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/soar/svc/auth"
)

// MockStore is a mock implementation of auth.CredentialStore.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockStore) Set(ctx context.Context, key, value string, opts auth.EntryOptions) error {
	args := m.Called(ctx, key, value, opts)
	return args.Error(0)
}

func (m *MockStore) Remove(ctx context.Context, key, path string) error {
	args := m.Called(ctx, key, path)
	return args.Error(0)
}

// MockAuthenticator is a mock implementation of auth.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, c auth.Credentials) (auth.Result, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(auth.Result), args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context) (auth.LogoutResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(auth.LogoutResult), args.Error(1)
}

// fastConfig removes the simulated latency.
func fastConfig() auth.Config {
	cfg := auth.DefaultConfig()
	cfg.LoginLatency = 0
	cfg.LogoutLatency = 0
	cfg.NavigationDelay = 0
	return cfg
}

var validCreds = auth.Credentials{Email: auth.ValidEmail, Password: auth.ValidPassword}
