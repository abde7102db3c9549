package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/quiz"
)

// Config holds all the configuration for the application
type Config struct {
	BotToken       string
	DatabaseDriver string
	DatabaseDSN    string
	AdminUsernames []string
	AuthoringMode  quiz.AuthoringMode
	AnswerMode     quiz.AnswerMode
	QuizDuration   time.Duration
	Workers        int
	HealthAddr     string
	Debug          bool
}

// Load loads the configuration from environment variables,
// reading a .env file first if one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		BotToken:       get("BOT_TOKEN", ""),
		DatabaseDriver: get("DB_DRIVER", database.DriverSQLite),
		HealthAddr:     get("HEALTH_ADDR", ""),
		Debug:          get("DEBUG", "") == "true",
	}
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN environment variable is required")
	}

	switch cfg.DatabaseDriver {
	case database.DriverSQLite:
		cfg.DatabaseDSN = get("DB_PATH", "./data/quiz.db")
	case database.DriverPostgres:
		cfg.DatabaseDSN = get("DATABASE_URL", "")
		if cfg.DatabaseDSN == "" {
			return nil, errors.New("DATABASE_URL environment variable is required for postgres")
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", database.DriverSQLite, database.DriverPostgres, cfg.DatabaseDriver)
	}

	for _, name := range strings.Split(get("ADMIN_USERNAMES", ""), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.AdminUsernames = append(cfg.AdminUsernames, name)
		}
	}

	var err error
	if cfg.AuthoringMode, err = quiz.ParseAuthoringMode(get("AUTHORING_MODE", string(quiz.AuthoringIncremental))); err != nil {
		return nil, fmt.Errorf("AUTHORING_MODE: %w", err)
	}

	// bulk quizzes carry a single typed answer per question
	defaultAnswerMode := quiz.ModeChoice
	if cfg.AuthoringMode == quiz.AuthoringBulk {
		defaultAnswerMode = quiz.ModeText
	}
	if cfg.AnswerMode, err = quiz.ParseAnswerMode(get("ANSWER_MODE", string(defaultAnswerMode))); err != nil {
		return nil, fmt.Errorf("ANSWER_MODE: %w", err)
	}

	if cfg.QuizDuration, err = time.ParseDuration(get("QUIZ_DURATION", "168h")); err != nil {
		return nil, fmt.Errorf("QUIZ_DURATION: %w", err)
	}
	if cfg.QuizDuration <= 0 {
		return nil, errors.New("QUIZ_DURATION must be positive")
	}

	if cfg.Workers, err = strconv.Atoi(get("WORKERS", "4")); err != nil {
		return nil, fmt.Errorf("WORKERS: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, errors.New("WORKERS must be at least 1")
	}

	return cfg, nil
}
