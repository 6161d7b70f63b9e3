package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/pkg/cookie"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
)

// LoginPageParams feeds the login page and its form fragment.
type LoginPageParams struct {
	Email      string
	RememberMe bool
	From       string
	AuthError  *string
	// Toasts raised by a failed submission, shown without a redirect.
	Toasts []toast.Toast
}

type Views struct {
	LoginPage func(LoginPageParams) templ.Component
	// LoginForm is patched into #login-form on DataStar submissions.
	LoginForm func(LoginPageParams) templ.Component
}

// ClientCookie identifies a browser across requests, so a submission racing
// another one from the same browser is answered with 409.
const ClientCookie = "soar-client"

var errOperationInFlight = handler.NewHTTPError(http.StatusConflict, "errors.operation_in_flight")

// Module serves sign-in and sign-out for browsers and API clients. Every
// request gets its own Controller bound to the request's cookie jar; the
// controllers of one client share their in-flight state.
type Module struct {
	auth         *auth.Service
	cookies      *cookie.Manager
	views        Views
	errorHandler handler.ErrorHandler
	log          *slog.Logger
	translator   auth.Translator
	navDelay     time.Duration
	clients      *clients
}

type Option func(*Module)

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

func WithTranslator(t auth.Translator) Option {
	return func(m *Module) { m.translator = t }
}

// WithNavigationDelay sets the pause before the post-login redirect of
// browser submissions.
func WithNavigationDelay(d time.Duration) Option {
	return func(m *Module) { m.navDelay = d }
}

func NewModule(svc *auth.Service, cookies *cookie.Manager, views Views, errorHandler handler.ErrorHandler, opts ...Option) *Module {
	m := &Module{
		auth:         svc,
		cookies:      cookies,
		views:        views,
		errorHandler: errorHandler,
		log:          logger.Discard(),
		navDelay:     auth.DefaultConfig().NavigationDelay,
		clients:      &clients{byID: make(map[string]*clientOps)},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolver binds the session service to the request's cookies, for
// auth.RequireAuth.
func (m *Module) Resolver() auth.SessionResolver {
	return func(w http.ResponseWriter, r *http.Request) auth.Session {
		return m.sessionFor(w, r)
	}
}

func (m *Module) sessionFor(w http.ResponseWriter, r *http.Request) *auth.Service {
	return m.auth.WithStore(auth.NewCookieStore(m.cookies.Jar(w, r)))
}

// flow is one request's controller and what it reported. Toasts are
// recorded; the caller decides whether they are flashed for the next page or
// returned in the response.
type flow struct {
	jar     *cookie.Jar
	ctrl    *auth.Controller
	nav     *auth.RecordingNavigator
	toasts  *toast.Recorder
	release func()
}

// browserFlow waits the navigation delay before answering with the redirect.
func (m *Module) browserFlow(w http.ResponseWriter, r *http.Request) *flow {
	return m.newFlow(m.cookies.Jar(w, r), m.navDelay)
}

// apiFlow does not wait; the client navigates itself.
func (m *Module) apiFlow(w http.ResponseWriter, r *http.Request) *flow {
	return m.newFlow(m.cookies.Jar(w, r), 0)
}

// newFlow acquires the client's operations; callers must defer f.release.
func (m *Module) newFlow(jar *cookie.Jar, delay time.Duration) *flow {
	f := &flow{jar: jar, nav: &auth.RecordingNavigator{}, toasts: &toast.Recorder{}}
	notifier := toast.NewMulti([]toast.Deliverer{f.toasts, toast.NewLogger(m.log)}, toast.WithLogger(m.log))

	var ops *auth.Operations
	ops, f.release = m.clients.acquire(m.clientID(jar))

	opts := []auth.ControllerOption{
		auth.WithScheduler(auth.ScheduleInline),
		auth.WithNavigationDelay(delay),
		auth.WithControllerLogger(m.log),
		auth.WithOperations(ops),
	}
	if m.translator != nil {
		opts = append(opts, auth.WithMessages(m.translator))
	}
	f.ctrl = auth.NewController(m.auth.WithStore(auth.NewCookieStore(jar)), notifier, f.nav, opts...)
	return f
}

// clientID reads the browser's id, issuing a signed one on its first
// submission or when the cookie does not verify.
func (m *Module) clientID(jar *cookie.Jar) string {
	if id, err := jar.GetSigned(ClientCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	if err := jar.SetSigned(ClientCookie, id); err != nil {
		m.log.Warn("failed to set client cookie", logger.Component("account"), logger.Error(err))
	}
	return id
}

// failure maps a controller error to the response for it.
func failure(err error) handler.Response {
	if errors.Is(err, auth.ErrOperationInFlight) {
		return handler.Error(errOperationInFlight)
	}
	return handler.Error(err)
}

// flash queues the recorded toasts for the next rendered page.
func (f *flow) flash(ctx context.Context, log *slog.Logger) {
	fl := toast.NewFlash(f.jar)
	for _, t := range f.toasts.Toasts() {
		if err := fl.Deliver(ctx, t); err != nil {
			log.WarnContext(ctx, "failed to flash toast", logger.Component("account"), logger.Error(err))
		}
	}
}

// redirect is where the controller navigated, or fallback when it did not.
func (f *flow) redirect(fallback string) string {
	if target, ok := f.nav.Target(); ok {
		return target
	}
	return fallback
}

// clients hands out one auth.Operations per browser for as long as a request
// from it is running.
type clients struct {
	mu   sync.Mutex
	byID map[string]*clientOps
}

type clientOps struct {
	ops  *auth.Operations
	refs int
}

func (c *clients) acquire(id string) (*auth.Operations, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byID[id]
	if !ok {
		e = &clientOps{ops: auth.NewOperations()}
		c.byID[id] = e
	}
	e.refs++

	var once sync.Once
	return e.ops, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if e.refs--; e.refs == 0 {
				delete(c.byID, id)
			}
		})
	}
}
