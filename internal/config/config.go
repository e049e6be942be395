package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App     AppConfig     `toml:"app"`
	Storage StorageConfig `toml:"storage"`
	Ingest  IngestConfig  `toml:"ingest"`
	LLM     LLMConfig     `toml:"llm"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type StorageConfig struct {
	UploadDir    string `toml:"upload_dir"`
	DatabasePath string `toml:"database_path"`
}

type IngestConfig struct {
	PoolSize          int `toml:"pool_size"`
	MaxRowsPerSheet   int `toml:"max_rows_per_sheet"`
	PDFImagePageCap   int `toml:"pdf_image_page_cap"`
	URLTimeoutSeconds int `toml:"url_timeout_seconds"`
}

type LLMConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "docanalyzer",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Storage: StorageConfig{
			UploadDir:    "uploads",
			DatabasePath: "docanalyzer.db",
		},
		Ingest: IngestConfig{
			PoolSize:          4,
			MaxRowsPerSheet:   100,
			PDFImagePageCap:   3,
			URLTimeoutSeconds: 30,
		},
		LLM: LLMConfig{
			APIKey: "",
			Model:  "gemini-2.0-flash",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Storage.UploadDir = getEnv("UPLOAD_DIR", cfg.Storage.UploadDir)
	cfg.Storage.DatabasePath = getEnv("DATABASE_PATH", cfg.Storage.DatabasePath)

	cfg.Ingest.PoolSize = getEnvAsInt("INGEST_POOL_SIZE", cfg.Ingest.PoolSize)
	cfg.Ingest.MaxRowsPerSheet = getEnvAsInt("INGEST_MAX_ROWS_PER_SHEET", cfg.Ingest.MaxRowsPerSheet)
	cfg.Ingest.PDFImagePageCap = getEnvAsInt("INGEST_PDF_IMAGE_PAGE_CAP", cfg.Ingest.PDFImagePageCap)
	cfg.Ingest.URLTimeoutSeconds = getEnvAsInt("INGEST_URL_TIMEOUT_SECONDS", cfg.Ingest.URLTimeoutSeconds)

	cfg.LLM.APIKey = getEnv("GEMINI_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("GEMINI_MODEL", cfg.LLM.Model)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
