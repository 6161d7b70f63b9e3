package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// LocalStorage keeps files under a base directory and serves them below baseURL.
type LocalStorage struct {
	baseDir string
	baseURL string
}

func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Join(ErrWriteFile, err)
	}
	return &LocalStorage{baseDir: abs, baseURL: baseURL}, nil
}

// Dir is the absolute base directory, for mounting a file server.
func (s *LocalStorage) Dir() string { return s.baseDir }

func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	mimeType, err := GetMIMEType(fh)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	f, err := s.Put(ctx, path, src, fh.Size, mimeType)
	if err != nil {
		return nil, err
	}
	f.Filename = SanitizeFilename(fh.Filename)
	return f, nil
}

// Put writes r to path. The reported size is the number of bytes written.
func (s *LocalStorage) Put(ctx context.Context, path string, r io.Reader, _ int64, mimeType string) (*File, error) {
	key, err := cleanKey(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	dst, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	written, copyErr := io.Copy(dst, r)
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(abs)
		return nil, fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	return &File{
		Filename: filepath.Base(key),
		Size:     written,
		MIMEType: mimeType,
		Path:     key,
		URL:      s.URL(key),
	}, nil
}

func (s *LocalStorage) Delete(_ context.Context, path string) error {
	key, err := cleanKey(path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key))); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %w", ErrDeleteFile, err)
	}
	return nil
}

func (s *LocalStorage) Exists(_ context.Context, path string) bool {
	key, err := cleanKey(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	return err == nil && !info.IsDir()
}

func (s *LocalStorage) URL(path string) string {
	key, err := cleanKey(path)
	if err != nil {
		return ""
	}
	return joinURL(s.baseURL, key)
}
