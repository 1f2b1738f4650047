package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション設定
type Config struct {
	Port               string
	AppEnv             string
	UploadDir          string
	OutputDir          string
	MaxUploadBytes     int64
	MaxRasterDimension int
	RequestTimeout     time.Duration
	RasterWorkers      int
}

const (
	defaultPort               = "8080"
	defaultAppEnv             = "development"
	defaultUploadDir          = "./uploads"
	defaultOutputDir          = "./output"
	defaultMaxUploadBytes     = 512 << 20
	defaultMaxRasterDimension = 16384
	defaultRequestTimeout     = 60 * time.Second
)

// Load .env があれば読み込んだ上で環境変数から設定を作る
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv 環境変数から設定を作る（未設定はデフォルト値）
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:      getString("PORT", defaultPort),
		AppEnv:    getString("APP_ENV", defaultAppEnv),
		UploadDir: getString("UPLOAD_DIR", defaultUploadDir),
		OutputDir: getString("OUTPUT_DIR", defaultOutputDir),
	}

	var err error
	if cfg.MaxUploadBytes, err = getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes); err != nil {
		return nil, err
	}
	if cfg.MaxRasterDimension, err = getInt("MAX_RASTER_DIMENSION", defaultMaxRasterDimension); err != nil {
		return nil, err
	}
	if cfg.RasterWorkers, err = getInt("RASTER_WORKERS", runtime.GOMAXPROCS(0)); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", defaultRequestTimeout); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction 本番環境かどうか
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES は正の整数である必要があります")
	}
	if c.MaxRasterDimension <= 0 {
		return fmt.Errorf("MAX_RASTER_DIMENSION は正の整数である必要があります")
	}
	if c.RasterWorkers <= 0 {
		return fmt.Errorf("RASTER_WORKERS は正の整数である必要があります")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT は正の期間である必要があります")
	}
	if c.UploadDir == "" || c.OutputDir == "" {
		return fmt.Errorf("UPLOAD_DIR と OUTPUT_DIR は必須です")
	}
	return nil
}

func getString(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return n, nil
}

func getInt64(key string, defaultValue int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return d, nil
}
