package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env     string
	Host    string
	Port    string
	RootURL string

	MongoURI string
	DBName   string

	JWTSecret    string
	JWTExpiresIn time.Duration

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Debug bool
}

func LoadConfig() (*Config, error) {
	env := getEnv("GO_ENV", "development")

	dbName := getEnv("MONGO_NAME", "report")
	if env == "test" {
		dbName += "-test"
	}

	mongoHost := getEnv("MONGO_HOST", "localhost")
	mongoPort := getEnv("MONGO_PORT", "27017")

	cfg := &Config{
		Env:          env,
		Host:         getEnv("HOST", "localhost"),
		Port:         getEnv("PORT", "3010"),
		RootURL:      getEnv("ROOT_URL", "http://localhost:3010"),
		MongoURI:     getEnv("MONGO_URI", fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort)),
		DBName:       dbName,
		JWTSecret:    getEnv("JWT_SECRET", "jwt-secret"),
		JWTExpiresIn: getEnvDuration("JWT_ACCESS_TOKEN_EXPIRES_IN", 8*time.Hour),
		MailHost:     getEnv("MAIL_TRANSPORT_HOST", "smtp.gmail.com"),
		MailPort:     getEnvInt("MAIL_TRANSPORT_PORT", 587),
		MailUser:     os.Getenv("MAIL_TRANSPORT_AUTH_USER"),
		MailPass:     os.Getenv("MAIL_TRANSPORT_AUTH_PASS"),
		MailFrom:     os.Getenv("MAIL_TRANSPORT_FROM"),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		Debug:        env == "development",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if !c.Debug && c.MailFrom == "" {
		return fmt.Errorf("MAIL_TRANSPORT_FROM is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
