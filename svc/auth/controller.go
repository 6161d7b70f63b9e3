package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/soar/pkg/async"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/statemachine"
	"github.com/dmitrymomot/soar/pkg/toast"
)

// Notification texts shown by the controller.
const (
	ToastLoginSuccess  = "Login successful!"
	ToastLoginFailed   = "Invalid credentials"
	ToastLogoutSuccess = "Logout successful!"
	ToastLogoutFailed  = "Error during logout"
)

const (
	loginErrorMessage  = "An error occurred during login"
	logoutErrorMessage = "An error occurred during logout"
)

// Authenticator is the part of Service the controller drives.
type Authenticator interface {
	Login(ctx context.Context, c Credentials) (Result, error)
	Logout(ctx context.Context) (LogoutResult, error)
}

type opState string

const (
	stateIdle      opState = "idle"
	statePending   opState = "pending"
	stateSucceeded opState = "succeeded"
	stateFailed    opState = "failed"
)

type opEvent string

const (
	eventStart   opEvent = "start"
	eventSucceed opEvent = "succeed"
	eventFail    opEvent = "fail"
	eventSettle  opEvent = "settle"
)

func newOperation(start ...statemachine.TransitionOption[opState, opEvent]) *statemachine.Machine[opState, opEvent] {
	return statemachine.MustNew(stateIdle,
		statemachine.WithTransition(stateIdle, statePending, eventStart, start...),
		statemachine.WithTransition(statePending, stateSucceeded, eventSucceed),
		statemachine.WithTransition(statePending, stateFailed, eventFail),
		statemachine.WithTransitionFrom([]opState{stateSucceeded, stateFailed}, stateIdle, eventSettle),
	)
}

// Operations is the in-flight and error state of one client. Login and
// logout are mutually exclusive: neither starts while the other is pending.
// Controllers built for the same client with WithOperations share it.
type Operations struct {
	login  *statemachine.Machine[opState, opEvent]
	logout *statemachine.Machine[opState, opEvent]

	// serializes starts; guards read the other machine
	startMu sync.Mutex

	mu        sync.Mutex
	authError *string
}

func NewOperations() *Operations {
	o := &Operations{}
	o.login = newOperation(
		statemachine.WithGuard[opState, opEvent](func(context.Context, opState, opEvent, any) bool {
			return !o.logout.Is(statePending)
		}),
		statemachine.WithAction[opState, opEvent](func(context.Context, opState, opState, opEvent, any) error {
			o.setAuthError(nil)
			return nil
		}),
	)
	o.logout = newOperation(
		statemachine.WithGuard[opState, opEvent](func(context.Context, opState, opEvent, any) bool {
			return !o.login.Is(statePending)
		}),
	)
	return o
}

func (o *Operations) start(ctx context.Context, op *statemachine.Machine[opState, opEvent]) error {
	o.startMu.Lock()
	defer o.startMu.Unlock()
	return op.Fire(ctx, eventStart, nil)
}

func (o *Operations) setAuthError(msg *string) {
	o.mu.Lock()
	o.authError = msg
	o.mu.Unlock()
}

// LoginOutcome is what a finished login reports to its caller.
type LoginOutcome struct {
	Success    bool
	User       *User
	Error      string
	RedirectTo string
}

type LogoutOutcome struct {
	Success    bool
	Error      string
	RedirectTo string
}

// Controller orchestrates login and logout for one client. Each operation
// kind has its own state machine; a call made while an operation is in
// flight resolves at once with ErrOperationInFlight and calls nothing.
type Controller struct {
	auth      Authenticator
	notifier  toast.Notifier
	navigator Navigator
	schedule  Scheduler
	navDelay  time.Duration
	log       *slog.Logger
	translate Translator

	ops *Operations
}

type ControllerOption func(*Controller)

func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.schedule = s
		}
	}
}

// WithNavigationDelay sets the pause between a successful login and the
// redirect. Defaults to 300ms.
func WithNavigationDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.navDelay = d }
}

func WithControllerLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMessages localizes the toasts and the generic error messages.
func WithMessages(t Translator) ControllerOption {
	return func(c *Controller) { c.translate = t }
}

// WithOperations shares in-flight state with other controllers of the same
// client.
func WithOperations(ops *Operations) ControllerOption {
	return func(c *Controller) {
		if ops != nil {
			c.ops = ops
		}
	}
}

func NewController(auth Authenticator, notifier toast.Notifier, navigator Navigator, opts ...ControllerOption) *Controller {
	c := &Controller{
		auth:      auth,
		notifier:  notifier,
		navigator: navigator,
		schedule:  ScheduleAsync,
		navDelay:  DefaultConfig().NavigationDelay,
		log:       logger.Discard(),
		ops:       NewOperations(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginConfig struct {
	returnTo string
}

type LoginOption func(*loginConfig)

// WithReturnTo sets the route to open after login. Non-local paths are
// replaced by LandingPath.
func WithReturnTo(path string) LoginOption {
	return func(c *loginConfig) { c.returnTo = SafeReturnPath(path) }
}

// HandleLogin starts a login. The operation runs detached from ctx
// cancellation: once started it completes. Failures resolve the future with
// a failed outcome; only ErrOperationInFlight is returned as an error.
func (c *Controller) HandleLogin(ctx context.Context, creds Credentials, opts ...LoginOption) *async.Future[LoginOutcome] {
	cfg := &loginConfig{returnTo: LandingPath}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := c.ops.start(ctx, c.ops.login); err != nil {
		return async.Resolved(LoginOutcome{}, ErrOperationInFlight)
	}

	return async.Async(context.WithoutCancel(ctx), creds, func(ctx context.Context, creds Credentials) (LoginOutcome, error) {
		return c.runLogin(ctx, creds, cfg.returnTo), nil
	})
}

func (c *Controller) runLogin(ctx context.Context, creds Credentials, returnTo string) LoginOutcome {
	defer c.settle(ctx, c.ops.login)

	res, err := c.auth.Login(ctx, creds)
	if err != nil || !res.Success {
		msg := res.Error
		if err != nil {
			c.log.ErrorContext(ctx, "login failed", logger.Component("auth_controller"), logger.Error(err))
			msg = err.Error()
		}
		if msg == "" {
			msg = c.message(ctx, "auth.login_error", loginErrorMessage)
		}

		c.fire(ctx, c.ops.login, eventFail)
		c.ops.setAuthError(&msg)
		c.notifier.Error(ctx, c.message(ctx, "toast.login_failed", ToastLoginFailed))
		return LoginOutcome{Error: msg}
	}

	c.fire(ctx, c.ops.login, eventSucceed)
	c.ops.setAuthError(nil)
	c.notifier.Success(ctx, c.message(ctx, "toast.login_success", ToastLoginSuccess))
	c.schedule(c.navDelay, func() {
		c.navigator.Navigate(ctx, returnTo, true)
	})
	return LoginOutcome{Success: true, User: res.User, RedirectTo: returnTo}
}

// HandleLogout starts a logout. Errors leave authError untouched.
func (c *Controller) HandleLogout(ctx context.Context) *async.Future[LogoutOutcome] {
	if err := c.ops.start(ctx, c.ops.logout); err != nil {
		return async.Resolved(LogoutOutcome{}, ErrOperationInFlight)
	}

	return async.Async(context.WithoutCancel(ctx), struct{}{}, func(ctx context.Context, _ struct{}) (LogoutOutcome, error) {
		return c.runLogout(ctx), nil
	})
}

func (c *Controller) runLogout(ctx context.Context) LogoutOutcome {
	defer c.settle(ctx, c.ops.logout)

	res, err := c.auth.Logout(ctx)
	if err != nil || !res.Success {
		msg := c.message(ctx, "auth.logout_error", logoutErrorMessage)
		if err != nil {
			c.log.ErrorContext(ctx, "logout failed", logger.Component("auth_controller"), logger.Error(err))
			if err.Error() != "" {
				msg = err.Error()
			}
		}

		c.fire(ctx, c.ops.logout, eventFail)
		c.notifier.Error(ctx, c.message(ctx, "toast.logout_failed", ToastLogoutFailed))
		return LogoutOutcome{Error: msg}
	}

	c.fire(ctx, c.ops.logout, eventSucceed)
	c.notifier.Success(ctx, c.message(ctx, "toast.logout_success", ToastLogoutSuccess))
	c.navigator.Navigate(ctx, LoginPath, false)
	return LogoutOutcome{Success: true, RedirectTo: LoginPath}
}

func (c *Controller) State() UIState {
	return UIState{
		IsLoggingIn:  c.IsLoggingIn(),
		IsLoggingOut: c.IsLoggingOut(),
		AuthError:    c.AuthError(),
	}
}

func (c *Controller) IsLoggingIn() bool  { return c.ops.login.Is(statePending) }
func (c *Controller) IsLoggingOut() bool { return c.ops.logout.Is(statePending) }

// AuthError returns a copy of the last login failure message, or nil.
func (c *Controller) AuthError() *string {
	c.ops.mu.Lock()
	defer c.ops.mu.Unlock()
	if c.ops.authError == nil {
		return nil
	}
	msg := *c.ops.authError
	return &msg
}

// ClearAuthError dismisses the login error. Pending flags are not affected.
func (c *Controller) ClearAuthError() {
	c.ops.setAuthError(nil)
}

func (c *Controller) fire(ctx context.Context, op *statemachine.Machine[opState, opEvent], ev opEvent) {
	if err := op.Fire(ctx, ev, nil); err != nil {
		c.log.ErrorContext(ctx, "unexpected operation transition",
			logger.Component("auth_controller"),
			logger.Event(string(ev)),
			logger.Error(err),
		)
	}
}

// settle returns op to idle once the outcome has been reported.
func (c *Controller) settle(ctx context.Context, op *statemachine.Machine[opState, opEvent]) {
	c.fire(ctx, op, eventSettle)
}

func (c *Controller) message(ctx context.Context, key, fallback string) string {
	if c.translate == nil {
		return fallback
	}
	if msg := c.translate.Tc(ctx, key); msg != key {
		return msg
	}
	return fallback
}
