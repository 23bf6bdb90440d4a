package config

import "os"

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Media    MediaConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     string
	RefreshTTL    string
	CookieSecure  string
	CookieDomain  string
	CookiePath    string
}

type MediaConfig struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	Bucket         string
	Region         string
	DisableTLS     string
	ForcePathStyle string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: os.Getenv("CORS_ORIGINS"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
			RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
			AccessTTL:     getenv("ACCESS_TOKEN_TTL", "15m"),
			RefreshTTL:    getenv("REFRESH_TOKEN_TTL", "240h"),
			CookieSecure:  os.Getenv("AUTH_COOKIE_SECURE"),
			CookieDomain:  os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookiePath:    os.Getenv("AUTH_COOKIE_PATH"),
		},
		Media: MediaConfig{
			Endpoint:       os.Getenv("MEDIA_S3_ENDPOINT"),
			AccessKey:      os.Getenv("MEDIA_S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("MEDIA_S3_SECRET_KEY"),
			Bucket:         getenv("MEDIA_S3_BUCKET", "wanderlog-media"),
			Region:         getenv("MEDIA_S3_REGION", "us-east-1"),
			DisableTLS:     os.Getenv("MEDIA_S3_DISABLE_TLS"),
			ForcePathStyle: os.Getenv("MEDIA_S3_FORCE_PATH_STYLE"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
