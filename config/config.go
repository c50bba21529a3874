package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	FrontendURL []string

	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Minio     MinioConfig
	Kafka     KafkaConfig
	Complaint ComplaintConfig
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Address  string
	Password string
}

type JWTConfig struct {
	Secret     string
	ExpiresIn  time.Duration
	BcryptCost int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ComplaintConfig drives the per-resident daily complaint limit.
type ComplaintConfig struct {
	QueuePrefix string
	DailyLimit  int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Could not read .env file", "error", err)
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGODB_DATABASE", "society")
	v.SetDefault("JWT_EXPIRES_IN", "168h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_QUEUE_FOR_COMPLAINT_LIMIT", "complaint_limit")
	v.SetDefault("COMPLAINT_DAILY_LIMIT", 5)
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_BUCKET", "society-uploads")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("KAFKA_TOPIC", "society-events")
	v.AutomaticEnv()

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Env:         v.GetString("GO_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		FrontendURL: splitList(v.GetString("FRONTEND_URL")),
		Mongo: MongoConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("REDIS_ADDRESS"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			ExpiresIn:  v.GetDuration("JWT_EXPIRES_IN"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Complaint: ComplaintConfig{
			QueuePrefix: v.GetString("REDIS_QUEUE_FOR_COMPLAINT_LIMIT"),
			DailyLimit:  v.GetInt("COMPLAINT_DAILY_LIMIT"),
		},
	}
	return cfg, cfg.Validate()
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("please define the MONGODB_URI environment variable")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if c.IsProduction() && len(c.FrontendURL) == 0 {
		return errors.New("FRONTEND_URL is required in production")
	}
	if c.Complaint.DailyLimit <= 0 {
		return errors.New("COMPLAINT_DAILY_LIMIT must be positive")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto slog; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
