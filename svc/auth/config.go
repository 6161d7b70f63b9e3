package auth

import "time"

// Config holds the simulated latencies and session lifetimes.
type Config struct {
	LoginLatency    time.Duration `env:"AUTH_LOGIN_LATENCY" envDefault:"800ms"`
	LogoutLatency   time.Duration `env:"AUTH_LOGOUT_LATENCY" envDefault:"300ms"`
	NavigationDelay time.Duration `env:"AUTH_NAVIGATION_DELAY" envDefault:"300ms"`
	SessionDays     int           `env:"AUTH_SESSION_DAYS" envDefault:"1"`
	RememberMeDays  int           `env:"AUTH_REMEMBER_ME_DAYS" envDefault:"30"`
}

// DefaultConfig matches the envDefault tags.
func DefaultConfig() Config {
	return Config{
		LoginLatency:    800 * time.Millisecond,
		LogoutLatency:   300 * time.Millisecond,
		NavigationDelay: 300 * time.Millisecond,
		SessionDays:     1,
		RememberMeDays:  30,
	}
}
