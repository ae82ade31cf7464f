package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	OCR       OCRConfig
	Translate TranslateConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// OCRConfig holds Tesseract settings.
type OCRConfig struct {
	// Language is the Tesseract language code used for recognition.
	Language string `mapstructure:"language"`
}

// TranslateConfig holds settings for the translation backend, which also
// serves language detection. The backend speaks the LibreTranslate API.
type TranslateConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Load reads configuration from environment variables with the MENULENS_
// prefix (e.g. MENULENS_SERVER_PORT, MENULENS_TRANSLATE_ENDPOINT).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MENULENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 16)

	// OCR defaults
	v.SetDefault("ocr.language", "eng")

	// Translate defaults
	v.SetDefault("translate.endpoint", "http://localhost:5000")
	v.SetDefault("translate.api_key", "")
	v.SetDefault("translate.timeout_secs", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
