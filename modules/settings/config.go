package settings

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMongo    = "mongo"
)

type Config struct {
	Store          string `env:"SETTINGS_STORE" envDefault:"memory"`
	AvatarMaxBytes int64  `env:"SETTINGS_AVATAR_MAX_BYTES" envDefault:"2097152"`
	AvatarPrefix   string `env:"SETTINGS_AVATAR_PREFIX" envDefault:"avatars"`
	// AvatarMaxSide bounds the longer edge of a cropped avatar, in pixels.
	AvatarMaxSide  int    `env:"SETTINGS_AVATAR_MAX_SIDE" envDefault:"512"`
}

func DefaultConfig() Config {
	return Config{
		Store:          StoreMemory,
		AvatarMaxBytes: 2 << 20,
		AvatarPrefix:   "avatars",
		AvatarMaxSide:  512,
	}
}
