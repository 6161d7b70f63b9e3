package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserEmail identifies the signed-in user. Empty values are dropped.
func UserEmail(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("user_email", email)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

// Route records the request path or a navigation target.
func Route(path string) slog.Attr {
	return slog.String("route", path)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}
