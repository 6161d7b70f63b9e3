package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
)

type controllerFixture struct {
	ctrl  *auth.Controller
	store *auth.MemoryStore
	toast *toast.Recorder
	nav   *auth.RecordingNavigator
}

func newController(t *testing.T, authn auth.Authenticator) controllerFixture {
	t.Helper()
	f := controllerFixture{
		store: auth.NewMemoryStore(),
		toast: &toast.Recorder{},
		nav:   &auth.RecordingNavigator{},
	}
	if authn == nil {
		authn = newService(f.store)
	}
	f.ctrl = auth.NewController(authn, f.toast, f.nav,
		auth.WithScheduler(auth.ScheduleInline),
		auth.WithNavigationDelay(0),
	)
	return f
}

func TestController_LoginSuccess(t *testing.T) {
	t.Parallel()

	f := newController(t, nil)
	out, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "/dashboard", out.RedirectTo)
	assert.Nil(t, f.ctrl.AuthError())
	assert.Equal(t, []string{"success: Login successful!"}, f.toast.Messages())

	target, ok := f.nav.Target()
	require.True(t, ok)
	assert.Equal(t, "/dashboard", target)
	assert.True(t, f.nav.Replace())
	assert.Equal(t, 1, f.nav.Calls())
	assert.Equal(t, 2, f.store.Len())
	assert.Equal(t, auth.UIState{}, f.ctrl.State())
}

func TestController_LoginReturnTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		returnTo string
		want     string
	}{
		{name: "came from", returnTo: "/settings", want: "/settings"},
		{name: "with query", returnTo: "/transactions?page=2", want: "/transactions?page=2"},
		{name: "absolute url", returnTo: "https://evil.example/x", want: "/dashboard"},
		{name: "protocol relative", returnTo: "//evil.example", want: "/dashboard"},
		{name: "login page", returnTo: "/", want: "/dashboard"},
		{name: "empty", returnTo: "", want: "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newController(t, nil)
			_, err := f.ctrl.HandleLogin(context.Background(), validCreds, auth.WithReturnTo(tt.returnTo)).Await()
			require.NoError(t, err)

			target, _ := f.nav.Target()
			assert.Equal(t, tt.want, target)
		})
	}
}

func TestController_LoginInvalid(t *testing.T) {
	t.Parallel()

	f := newController(t, nil)
	out, err := f.ctrl.HandleLogin(context.Background(), auth.Credentials{Email: "a@b.c", Password: "x"}).Await()
	require.NoError(t, err)

	msg := "Email or password is invalid. Use 'soar@soar.com' and 'hire-me' for login."
	assert.False(t, out.Success)
	assert.Equal(t, msg, out.Error)
	require.NotNil(t, f.ctrl.AuthError())
	assert.Equal(t, msg, *f.ctrl.AuthError())
	assert.Equal(t, []string{"error: Invalid credentials"}, f.toast.Messages())
	assert.Zero(t, f.nav.Calls())

	f.ctrl.ClearAuthError()
	assert.Nil(t, f.ctrl.AuthError())
	assert.False(t, f.ctrl.IsLoggingIn())
	assert.False(t, f.ctrl.IsLoggingOut())
}

func TestController_LoginError(t *testing.T) {
	t.Parallel()

	t.Run("error message", func(t *testing.T) {
		t.Parallel()
		m := &MockAuthenticator{}
		m.On("Login", mock.Anything, validCreds).Return(auth.Result{}, errors.New("network down"))

		f := newController(t, m)
		out, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
		require.NoError(t, err)
		assert.Equal(t, "network down", out.Error)
		assert.Equal(t, "network down", *f.ctrl.AuthError())
		assert.Equal(t, []string{"error: Invalid credentials"}, f.toast.Messages())
		assert.Zero(t, f.nav.Calls())
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()
		m := &MockAuthenticator{}
		m.On("Login", mock.Anything, validCreds).Return(auth.Result{}, errors.New(""))

		f := newController(t, m)
		_, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
		require.NoError(t, err)
		assert.Equal(t, "An error occurred during login", *f.ctrl.AuthError())
	})
}

func TestController_NewLoginClearsError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	m := &MockAuthenticator{}
	m.On("Login", mock.Anything, auth.Credentials{}).Return(auth.Result{Error: "bad"}, nil).Once()
	m.On("Login", mock.Anything, validCreds).
		WaitUntil(toTimeChan(release)).
		Return(auth.Result{Success: true, User: &auth.User{}}, nil).Once()

	f := newController(t, m)
	_, err := f.ctrl.HandleLogin(context.Background(), auth.Credentials{}).Await()
	require.NoError(t, err)
	require.NotNil(t, f.ctrl.AuthError())

	fut := f.ctrl.HandleLogin(context.Background(), validCreds)
	assert.Nil(t, f.ctrl.AuthError())
	assert.True(t, f.ctrl.IsLoggingIn())

	close(release)
	_, err = fut.Await()
	require.NoError(t, err)
	assert.False(t, f.ctrl.IsLoggingIn())
}

func TestController_LoginInFlight(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	m := &MockAuthenticator{}
	m.On("Login", mock.Anything, validCreds).
		WaitUntil(toTimeChan(release)).
		Return(auth.Result{Success: true, User: &auth.User{}}, nil).Once()

	f := newController(t, m)
	first := f.ctrl.HandleLogin(context.Background(), validCreds)

	_, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
	assert.ErrorIs(t, err, auth.ErrOperationInFlight)

	close(release)
	out, err := first.Await()
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, []string{"success: Login successful!"}, f.toast.Messages())
	m.AssertNumberOfCalls(t, "Login", 1)
}

func TestController_LoginAndLogoutExcludeEachOther(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	m := &MockAuthenticator{}
	m.On("Logout", mock.Anything).WaitUntil(toTimeChan(release)).Return(auth.LogoutResult{Success: true}, nil).Once()
	m.On("Login", mock.Anything, validCreds).Return(auth.Result{Success: true, User: &auth.User{}}, nil).Once()

	f := newController(t, m)
	logout := f.ctrl.HandleLogout(context.Background())

	_, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
	assert.ErrorIs(t, err, auth.ErrOperationInFlight)
	assert.False(t, f.ctrl.IsLoggingIn())

	close(release)
	_, err = logout.Await()
	require.NoError(t, err)

	out, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
	require.NoError(t, err)
	assert.True(t, out.Success)
	m.AssertNumberOfCalls(t, "Login", 1)
}

func TestController_SharedOperations(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	m := &MockAuthenticator{}
	m.On("Login", mock.Anything, validCreds).
		WaitUntil(toTimeChan(release)).
		Return(auth.Result{Error: "bad"}, nil).Once()

	ops := auth.NewOperations()
	first := auth.NewController(m, &toast.Recorder{}, &auth.RecordingNavigator{},
		auth.WithScheduler(auth.ScheduleInline), auth.WithOperations(ops))
	second := auth.NewController(m, &toast.Recorder{}, &auth.RecordingNavigator{},
		auth.WithScheduler(auth.ScheduleInline), auth.WithOperations(ops))

	fut := first.HandleLogin(context.Background(), validCreds)
	assert.True(t, second.IsLoggingIn())

	_, err := second.HandleLogin(context.Background(), validCreds).Await()
	assert.ErrorIs(t, err, auth.ErrOperationInFlight)

	close(release)
	_, err = fut.Await()
	require.NoError(t, err)
	require.NotNil(t, second.AuthError())
	assert.Equal(t, "bad", *second.AuthError())
	m.AssertNumberOfCalls(t, "Login", 1)
}

type mapTranslator map[string]string

func (m mapTranslator) Tc(_ context.Context, key string, _ ...string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

func TestController_LocalizedToasts(t *testing.T) {
	t.Parallel()

	rec := &toast.Recorder{}
	tr := mapTranslator{
		"toast.login_success":  "Login realizado com sucesso!",
		"toast.logout_success": "Logout realizado com sucesso!",
	}
	ctrl := auth.NewController(newService(auth.NewMemoryStore()), rec, &auth.RecordingNavigator{},
		auth.WithScheduler(auth.ScheduleInline),
		auth.WithNavigationDelay(0),
		auth.WithMessages(tr),
	)

	_, err := ctrl.HandleLogin(context.Background(), auth.Credentials{}).Await()
	require.NoError(t, err)
	_, err = ctrl.HandleLogin(context.Background(), validCreds).Await()
	require.NoError(t, err)
	_, err = ctrl.HandleLogout(context.Background()).Await()
	require.NoError(t, err)

	// missing keys fall back to the English text
	assert.Equal(t, []string{
		"error: Invalid credentials",
		"success: Login realizado com sucesso!",
		"success: Logout realizado com sucesso!",
	}, rec.Messages())
}

func TestController_ClearAuthErrorKeepsPending(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	m := &MockAuthenticator{}
	m.On("Logout", mock.Anything).WaitUntil(toTimeChan(release)).Return(auth.LogoutResult{Success: true}, nil)

	f := newController(t, m)
	fut := f.ctrl.HandleLogout(context.Background())
	require.True(t, f.ctrl.IsLoggingOut())

	f.ctrl.ClearAuthError()
	assert.True(t, f.ctrl.IsLoggingOut())

	close(release)
	_, err := fut.Await()
	require.NoError(t, err)
}

func TestController_RunsDetachedFromCaller(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	m := &MockAuthenticator{}
	m.On("Login", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), validCreds).
		WaitUntil(toTimeChan(release)).
		Return(auth.Result{Success: true, User: &auth.User{}}, nil)

	f := newController(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	fut := f.ctrl.HandleLogin(ctx, validCreds)
	cancel()
	close(release)

	out, err := fut.Await()
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestController_Logout(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil)
		_, err := f.ctrl.HandleLogin(context.Background(), validCreds).Await()
		require.NoError(t, err)

		out, err := f.ctrl.HandleLogout(context.Background()).Await()
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, "/", out.RedirectTo)
		assert.Zero(t, f.store.Len())

		target, _ := f.nav.Target()
		assert.Equal(t, "/", target)
		assert.Equal(t, []string{"success: Login successful!", "success: Logout successful!"}, f.toast.Messages())
	})

	t.Run("error keeps auth error", func(t *testing.T) {
		t.Parallel()
		m := &MockAuthenticator{}
		m.On("Login", mock.Anything, mock.Anything).Return(auth.Result{Error: "bad"}, nil)
		m.On("Logout", mock.Anything).Return(auth.LogoutResult{}, errors.New("store locked"))

		f := newController(t, m)
		_, err := f.ctrl.HandleLogin(context.Background(), auth.Credentials{}).Await()
		require.NoError(t, err)

		out, err := f.ctrl.HandleLogout(context.Background()).Await()
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, "bad", *f.ctrl.AuthError())
		assert.Equal(t, []string{"error: Invalid credentials", "error: Error during logout"}, f.toast.Messages())
		assert.Zero(t, f.nav.Calls())
	})
}

func TestController_ScheduledNavigationFollowsNotification(t *testing.T) {
	t.Parallel()

	store := auth.NewMemoryStore()
	rec := &toast.Recorder{}
	navigated := make(chan int, 1)
	nav := auth.NavigatorFunc(func(ctx context.Context, path string, replace bool) {
		navigated <- len(rec.Toasts()) + store.Len()
	})

	ctrl := auth.NewController(newService(store), rec, nav, auth.WithNavigationDelay(10*time.Millisecond))
	_, err := ctrl.HandleLogin(context.Background(), validCreds).Await()
	require.NoError(t, err)

	select {
	case n := <-navigated:
		assert.Equal(t, 3, n, "one toast and two entries before navigation")
	case <-time.After(time.Second):
		t.Fatal("navigation was not scheduled")
	}
}

// toTimeChan adapts a release channel to mock.Call.WaitUntil.
func toTimeChan(release <-chan struct{}) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		<-release
		close(ch)
	}()
	return ch
}
