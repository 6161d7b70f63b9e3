package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/soar/pkg/environment"
	"github.com/dmitrymomot/soar/pkg/logger"
)

const invalidCredentialsMessage = "Email or password is invalid. Use 'soar@soar.com' and 'hire-me' for login."

// Translator localizes messages using the language stored in ctx.
// *i18n.Translator satisfies it.
type Translator interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// Service is the session backend: it validates credentials and keeps the
// token and user info in a CredentialStore. It holds no state between calls.
type Service struct {
	store      CredentialStore
	translator Translator
	log        *slog.Logger
	cfg        Config
	env        environment.Environment
}

type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithTranslator(t Translator) ServiceOption {
	return func(s *Service) { s.translator = t }
}

// WithConfig sets latencies and lifetimes. Zero latencies disable the wait.
func WithConfig(cfg Config) ServiceOption {
	return func(s *Service) { s.cfg = cfg }
}

// WithEnvironment pins the environment used for the Secure flag. Without it
// the environment is read from the request context.
func WithEnvironment(env environment.Environment) ServiceOption {
	return func(s *Service) { s.env = env }
}

func NewService(store CredentialStore, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   logger.Discard(),
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithStore returns a copy of the service bound to store. HTTP handlers use
// it with a CookieStore for the current request.
func (s *Service) WithStore(store CredentialStore) *Service {
	cp := *s
	cp.store = store
	return &cp
}

// Login waits the simulated latency and checks the mock credentials.
// Wrong credentials yield a failed Result and leave the store untouched.
// On success both entries are written, or neither is.
func (s *Service) Login(ctx context.Context, c Credentials) (Result, error) {
	if err := sleep(ctx, s.cfg.LoginLatency); err != nil {
		return Result{}, err
	}

	if c.Email != ValidEmail || c.Password != ValidPassword {
		s.log.InfoContext(ctx, "login rejected",
			logger.Component("auth"),
			logger.UserEmail(c.Email),
		)
		return Result{Error: s.message(ctx, "auth.invalid_credentials", invalidCredentialsMessage)}, nil
	}

	user := User{ID: MockUserID, Name: MockUserName, Email: c.Email, Role: MockUserRole}
	info, err := json.Marshal(user.Info())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSaveSession, err)
	}

	opts := s.entryOptions(ctx, c.RememberMe)
	if err := s.store.Set(ctx, TokenKey, MockToken, opts); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSaveSession, err)
	}
	if err := s.store.Set(ctx, UserInfoKey, string(info), opts); err != nil {
		if rmErr := s.store.Remove(ctx, TokenKey, opts.Path); rmErr != nil {
			s.log.ErrorContext(ctx, "failed to roll back session token",
				logger.Component("auth"),
				logger.Error(rmErr),
			)
		}
		return Result{}, fmt.Errorf("%w: %w", ErrSaveSession, err)
	}

	s.log.InfoContext(ctx, "login succeeded",
		logger.Component("auth"),
		logger.UserEmail(c.Email),
		slog.Bool("remember_me", c.RememberMe),
	)
	return Result{Success: true, User: &user, Token: MockToken}, nil
}

// Logout waits the simulated latency and removes both entries, present or not.
func (s *Service) Logout(ctx context.Context) (LogoutResult, error) {
	if err := sleep(ctx, s.cfg.LogoutLatency); err != nil {
		return LogoutResult{}, err
	}

	err := errors.Join(
		s.store.Remove(ctx, TokenKey, LoginPath),
		s.store.Remove(ctx, UserInfoKey, LoginPath),
	)
	if err != nil {
		return LogoutResult{}, fmt.Errorf("%w: %w", ErrClearSession, err)
	}
	return LogoutResult{Success: true}, nil
}

func (s *Service) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.store.Get(ctx, TokenKey)
	return ok
}

// UserInfo returns nil when the entry is missing or unreadable.
func (s *Service) UserInfo(ctx context.Context) *UserInfo {
	raw, ok := s.store.Get(ctx, UserInfoKey)
	if !ok {
		return nil
	}

	var info *UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		s.log.ErrorContext(ctx, "failed to parse user info",
			logger.Component("auth"),
			logger.Error(err),
		)
		return nil
	}
	return info
}

func (s *Service) entryOptions(ctx context.Context, rememberMe bool) EntryOptions {
	days := s.cfg.SessionDays
	if rememberMe {
		days = s.cfg.RememberMeDays
	}

	production := s.env.IsProduction()
	if s.env == "" {
		production = environment.IsProduction(ctx)
	}

	return EntryOptions{
		ExpiresInDays: days,
		Path:          LoginPath,
		SameSite:      http.SameSiteLaxMode,
		Secure:        production,
	}
}

func (s *Service) message(ctx context.Context, key, fallback string) string {
	if s.translator == nil {
		return fallback
	}
	if msg := s.translator.Tc(ctx, key); msg != key {
		return msg
	}
	return fallback
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
