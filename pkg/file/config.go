package file

import (
	"context"
	"fmt"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

type Config struct {
	Driver    string `env:"FILE_STORAGE" envDefault:"local"`
	LocalDir  string `env:"FILE_LOCAL_DIR" envDefault:"./uploads"`
	LocalURL  string `env:"FILE_LOCAL_URL" envDefault:"/uploads"`
	S3Bucket  string `env:"FILE_S3_BUCKET"`
	S3Region  string `env:"FILE_S3_REGION" envDefault:"us-east-1"`
	S3Key     string `env:"FILE_S3_ACCESS_KEY_ID"`
	S3Secret  string `env:"FILE_S3_SECRET_KEY"`
	S3URL     string `env:"FILE_S3_ENDPOINT"`
	S3BaseURL string `env:"FILE_S3_BASE_URL"`
	PathStyle bool   `env:"FILE_S3_PATH_STYLE" envDefault:"false"`
}

// New builds the storage selected by cfg.Driver.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.LocalURL)
	case DriverS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3Key,
			SecretKey:      cfg.S3Secret,
			Endpoint:       cfg.S3URL,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.PathStyle,
		})
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
