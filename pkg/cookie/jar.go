package cookie

import (
	"net/http"
	"sync"
)

// Jar is a request-scoped view of the client's cookies.
// Reads come from the request unless the jar itself wrote or deleted the
// cookie earlier, in which case the pending value wins. Writes go out as
// Set-Cookie headers on the response.
type Jar struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request

	mu      sync.Mutex
	pending map[string]*string // nil value = deleted
}

// Jar binds the manager to a single request/response pair.
func (m *Manager) Jar(w http.ResponseWriter, r *http.Request) *Jar {
	return &Jar{
		m:       m,
		w:       w,
		r:       r,
		pending: make(map[string]*string),
	}
}

// Defaults returns the manager defaults used by this jar.
func (j *Jar) Defaults() Options {
	return j.m.Defaults()
}

func (j *Jar) Get(name string) (string, error) {
	j.mu.Lock()
	v, ok := j.pending[name]
	j.mu.Unlock()

	if ok {
		if v == nil {
			return "", ErrCookieNotFound
		}
		return *v, nil
	}
	return j.m.Get(j.r, name)
}

func (j *Jar) Set(name, value string, opts ...Option) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.m.Set(j.w, name, value, opts...); err != nil {
		return err
	}
	j.pending[name] = &value
	return nil
}

func (j *Jar) Delete(name string, opts ...Option) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.m.Delete(j.w, name, opts...)
	j.pending[name] = nil
}

// SetSigned stores value with an HMAC-SHA256 signature. The value itself is
// readable by the client.
func (j *Jar) SetSigned(name, value string, opts ...Option) error {
	return j.Set(name, j.m.sign(value), opts...)
}

// GetSigned returns the value if its signature matches one of the secrets.
func (j *Jar) GetSigned(name string) (string, error) {
	signed, err := j.Get(name)
	if err != nil {
		return "", err
	}
	return j.m.verify(signed)
}

func (j *Jar) SetEncrypted(name, value string, opts ...Option) error {
	encrypted, err := j.m.encrypt(value)
	if err != nil {
		return err
	}
	return j.Set(name, encrypted, opts...)
}

func (j *Jar) GetEncrypted(name string) (string, error) {
	encrypted, err := j.Get(name)
	if err != nil {
		return "", err
	}
	return j.m.decrypt(encrypted)
}
