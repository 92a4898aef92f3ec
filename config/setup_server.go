package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	ServerAddr     string          `yaml:"serverAddr"`
	S3Config       S3Config        `yaml:"s3Config"`
	JWT            JWTConfig       `yaml:"jwt"`
	Cleanup        CleanupConfig   `yaml:"cleanup"`
	Transform      TransformConfig `yaml:"transform"`
	Kafka          KafkaConfig     `yaml:"kafka"`
	TTL            TTL             `yaml:"TTL"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	// секреты можно переопределить через окружение, в yaml их хранить необязательно
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		cfg.JWT.SecretKey = secret
	}
	if apiKey := os.Getenv("TRANSFORM_API_KEY"); apiKey != "" {
		cfg.Transform.APIKey = apiKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность параметров времени жизни токенов.
// Окно хранения черного списка обязано быть не меньше времени жизни access-токена,
// иначе отозванный, но еще криптографически валидный токен может быть удален
// из черного списка раньше, чем истечет его подпись.
func (cfg *AppConfig) Validate() error {
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key не задан")
	}

	accessTTL, err := time.ParseDuration(cfg.JWT.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("неверный jwt.access_token_ttl: %w", err)
	}
	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("неверный jwt.refresh_token_ttl: %w", err)
	}
	if refreshTTL <= accessTTL {
		return fmt.Errorf("jwt.refresh_token_ttl должен быть больше jwt.access_token_ttl")
	}

	retention, err := time.ParseDuration(cfg.Cleanup.Retention)
	if err != nil {
		return fmt.Errorf("неверный cleanup.retention: %w", err)
	}
	if _, err := time.ParseDuration(cfg.Cleanup.Interval); err != nil {
		return fmt.Errorf("неверный cleanup.interval: %w", err)
	}
	if retention < accessTTL {
		return fmt.Errorf("cleanup.retention (%s) меньше jwt.access_token_ttl (%s)", retention, accessTTL)
	}

	return nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
