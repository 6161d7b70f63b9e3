package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/dmitrymomot/soar/pkg/file"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/validator"
)

// Service reads and merges per-user settings.
type Service struct {
	store     Store
	files     file.Storage
	cfg       Config
	log       *slog.Logger
	languages []string
	now       func() time.Time

	locks sync.Map // user key -> *sync.Mutex
}

type Option func(*Service)

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFileStorage enables avatar uploads.
func WithFileStorage(fs file.Storage) Option {
	return func(s *Service) { s.files = fs }
}

// WithLanguages sets the values accepted for Preferences.Language.
func WithLanguages(langs ...string) Option {
	return func(s *Service) {
		if len(langs) > 0 {
			s.languages = langs
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		cfg:       DefaultConfig(),
		log:       logger.Discard(),
		languages: []string{"en"},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Languages() []string { return s.languages }

// Get returns the stored settings, or the defaults for a user that never saved.
func (s *Service) Get(ctx context.Context, key string) (Settings, error) {
	if key == "" {
		return Settings{}, ErrUnknownKey
	}
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Defaults(s.now()), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return v, nil
}

func (s *Service) UpdateProfile(ctx context.Context, key string, u ProfileUpdate) (Settings, error) {
	u = u.normalize()
	if err := u.Validate(s.now()); err != nil {
		return Settings{}, err
	}
	return s.update(ctx, key, func(v *Settings) { u.apply(&v.Profile) })
}

func (s *Service) UpdatePreferences(ctx context.Context, key string, u PreferencesUpdate) (Settings, error) {
	if err := u.Validate(s.languages); err != nil {
		return Settings{}, err
	}
	return s.update(ctx, key, func(v *Settings) { u.apply(&v.Preferences) })
}

func (s *Service) UpdateSecurity(ctx context.Context, key string, u SecurityUpdate) (Settings, error) {
	if err := u.Validate(s.now()); err != nil {
		return Settings{}, err
	}
	return s.update(ctx, key, func(v *Settings) { u.apply(&v.Security) })
}

// UploadAvatar stores an image and points ProfilePicture at it. The previous
// upload, if any, is removed once the new one is saved.
func (s *Service) UploadAvatar(ctx context.Context, key string, fh *multipart.FileHeader, opts ...AvatarOption) (Settings, error) {
	if s.files == nil {
		return Settings{}, ErrNoStorage
	}
	if err := s.validateAvatar(fh); err != nil {
		return Settings{}, err
	}

	var o avatarOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		stored *file.File
		err    error
	)
	if o.crop != nil {
		stored, err = s.saveCropped(ctx, fh, *o.crop)
	} else {
		stored, err = s.saveOriginal(ctx, fh)
	}
	if err != nil {
		return Settings{}, err
	}

	var previous string
	out, err := s.update(ctx, key, func(v *Settings) {
		previous = v.AvatarKey
		v.AvatarKey = stored.Path
		v.ProfilePicture = stored.URL
	})
	if err != nil {
		s.remove(ctx, stored.Path)
		return Settings{}, err
	}
	if previous != "" && previous != stored.Path {
		s.remove(ctx, previous)
	}
	return out, nil
}

func (s *Service) saveOriginal(ctx context.Context, fh *multipart.FileHeader) (*file.File, error) {
	mimeType, err := file.GetMIMEType(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	stored, err := s.files.Save(ctx, fh, s.avatarKey(imageExt(mimeType)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return stored, nil
}

func (s *Service) saveCropped(ctx context.Context, fh *multipart.FileHeader, c Crop) (*file.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer func() { _ = src.Close() }()

	b, err := cropImage(src, c, s.cfg.AvatarMaxSide)
	if err != nil {
		return nil, err
	}
	stored, err := s.files.Put(ctx, s.avatarKey(".jpg"), bytes.NewReader(b), int64(len(b)), "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return stored, nil
}

func (s *Service) avatarKey(ext string) string {
	return path.Join(s.cfg.AvatarPrefix, ulid.Make().String()+ext)
}

func (s *Service) update(ctx context.Context, key string, mutate func(*Settings)) (Settings, error) {
	unlock := s.lock(key)
	defer unlock()

	v, err := s.Get(ctx, key)
	if err != nil {
		return Settings{}, err
	}
	mutate(&v)
	v.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, key, v); err != nil {
		s.log.ErrorContext(ctx, "failed to save settings", logger.UserEmail(key), logger.Error(err))
		return Settings{}, fmt.Errorf("%w: %w", ErrSave, err)
	}
	return v, nil
}

func (s *Service) lock(key string) func() {
	m, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) remove(ctx context.Context, objectKey string) {
	if err := s.files.Delete(ctx, objectKey); err != nil && !errors.Is(err, file.ErrFileNotFound) {
		s.log.WarnContext(ctx, "failed to delete avatar", slog.String("key", objectKey), logger.Error(err))
	}
}

func (s *Service) validateAvatar(fh *multipart.FileHeader) error {
	if fh == nil {
		return validator.Apply(validator.Required("avatar", ""))
	}
	if err := file.ValidateSize(fh, s.cfg.AvatarMaxBytes); err != nil {
		return validator.ValidationErrors{{
			Field:          "avatar",
			Message:        fmt.Sprintf("must be at most %s", humanBytes(s.cfg.AvatarMaxBytes)),
			TranslationKey: "validation.file_too_large",
			TranslationValues: map[string]string{
				"field": "avatar",
				"max":   humanBytes(s.cfg.AvatarMaxBytes),
			},
		}}
	}
	if err := file.ValidateMIMEType(fh, file.ImageTypes...); err != nil {
		if !errors.Is(err, file.ErrMIMETypeNotAllowed) {
			return fmt.Errorf("%w: %w", ErrUpload, err)
		}
		return undecodableAvatar()
	}
	return nil
}

func imageExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
