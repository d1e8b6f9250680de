package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	DefaultHTTPPort = "8080"
	DefaultTimezone = kernel.DefaultTimezone
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	Timezone                string
	MetricsSnapshotSchedule string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:                getEnv("HTTP_PORT", DefaultHTTPPort),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               getEnv("DB_SSLMODE", "disable"),
		Timezone:                getEnv("TIMEZONE", DefaultTimezone),
		MetricsSnapshotSchedule: getEnv("METRICS_SNAPSHOT_SCHEDULE", jobs.DefaultMetricsSnapshotSchedule),
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var missing []error
	if c.DBUser == "" {
		missing = append(missing, errors.New("DB_USER is required"))
	}
	if c.DBName == "" {
		missing = append(missing, errors.New("DB_NAME is required"))
	}
	return errors.Join(missing...)
}

// DSN is the libpq-style connection string understood by both pgx and gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
