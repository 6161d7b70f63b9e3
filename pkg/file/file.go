package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// File describes a stored upload.
type File struct {
	Filename string
	Size     int64
	MIMEType string
	Path     string // key relative to the storage root
	URL      string
}

// Storage saves uploads and serves them by URL.
type Storage interface {
	Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error)
	// Put stores content produced by the server, such as a processed image.
	Put(ctx context.Context, path string, r io.Reader, size int64, mimeType string) (*File, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
	URL(path string) string
}

// ImageTypes are the formats accepted for avatars.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// GetMIMEType sniffs the first 512 bytes instead of trusting the extension.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return http.DetectContentType(buf[:n]), nil
}

func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size > maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, fh.Size, maxBytes)
	}
	return nil
}

// ValidateMIMEType allows everything when allowed is empty.
func ValidateMIMEType(fh *multipart.FileHeader, allowed ...string) error {
	if len(allowed) == 0 {
		return nil
	}
	mimeType, err := GetMIMEType(fh)
	if err != nil {
		return err
	}
	if !slices.Contains(allowed, mimeType) {
		return fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mimeType)
	}
	return nil
}

// SanitizeFilename strips directories and NUL bytes.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(filepath.Base(name), "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}

// cleanKey rejects traversal and returns a slash-separated relative key.
func cleanKey(path string) (string, error) {
	key := strings.TrimPrefix(filepath.ToSlash(path), "/")
	if key == "" || slices.Contains(strings.Split(key, "/"), "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return key, nil
}

func joinURL(base, key string) string {
	if base == "" {
		return "/" + key
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}
