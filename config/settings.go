package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the process configuration, read from the environment.
type Settings struct {
	Port    string
	BaseURL string
	Version string

	AdminKey string

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	AllowedHosts  string
	CanonicalHost string

	LogLevel       string
	SwaggerEnabled bool
	UploadTempDir  string

	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioUseSSL     bool
	MinioPublicBase string

	// DotenvLoaded reports whether a .env file was found.
	DotenvLoaded bool
}

var defaults = map[string]any{
	"PORT":            "3000",
	"SUPABASE_BUCKET": "videos",
	"LOG_LEVEL":       "info",
	"APP_VERSION":     "dev",
	"SWAGGER_ENABLED": false,
	"MINIO_USE_SSL":   false,
}

// Load reads a .env file if present, then the environment.
func Load() (*Settings, error) {
	loaded := godotenv.Load() == nil
	return fromViper(newViper(), loaded)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func fromViper(v *viper.Viper, dotenv bool) (*Settings, error) {
	s := &Settings{
		Port:            strings.TrimSpace(v.GetString("PORT")),
		BaseURL:         strings.TrimRight(strings.TrimSpace(v.GetString("BASE_URL")), "/"),
		Version:         v.GetString("APP_VERSION"),
		AdminKey:        v.GetString("ADMIN_KEY"),
		SupabaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("SUPABASE_URL")), "/"),
		SupabaseKey:     strings.TrimSpace(v.GetString("SUPABASE_KEY")),
		SupabaseBucket:  strings.TrimSpace(v.GetString("SUPABASE_BUCKET")),
		AllowedHosts:    v.GetString("ALLOWED_HOSTS"),
		CanonicalHost:   strings.TrimSpace(v.GetString("CANONICAL_HOST")),
		LogLevel:        v.GetString("LOG_LEVEL"),
		SwaggerEnabled:  v.GetBool("SWAGGER_ENABLED"),
		UploadTempDir:   v.GetString("UPLOAD_TEMP_DIR"),
		MinioEndpoint:   strings.TrimSpace(v.GetString("MINIO_ENDPOINT")),
		MinioAccessKey:  v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:  v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:     v.GetBool("MINIO_USE_SSL"),
		MinioPublicBase: v.GetString("MINIO_PUBLIC_BASE"),
		DotenvLoaded:    dotenv,
	}

	if s.Port == "" {
		s.Port = "3000"
	}
	if _, err := strconv.Atoi(s.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", s.Port, err)
	}
	if s.SupabaseBucket == "" {
		s.SupabaseBucket = "videos"
	}
	return s, nil
}

// Addr is the listen address.
func (s *Settings) Addr() string {
	return ":" + s.Port
}

// UsesMinio reports whether blobs go to an S3-compatible bucket instead of
// Supabase Storage.
func (s *Settings) UsesMinio() bool {
	return s.MinioEndpoint != ""
}
