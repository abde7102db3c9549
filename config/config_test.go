package config

import (
	"testing"
	"time"

	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"BOT_TOKEN": "t"}))
	require.NoError(t, err)

	assert.Equal(t, database.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "./data/quiz.db", cfg.DatabaseDSN)
	assert.Equal(t, quiz.AuthoringIncremental, cfg.AuthoringMode)
	assert.Equal(t, quiz.ModeChoice, cfg.AnswerMode)
	assert.Equal(t, 168*time.Hour, cfg.QuizDuration)
	assert.Equal(t, 4, cfg.Workers)
	assert.Empty(t, cfg.AdminUsernames)
	assert.False(t, cfg.Debug)
}

func TestBulkDefaultsToTextAnswers(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"BOT_TOKEN": "t", "AUTHORING_MODE": "bulk"}))
	require.NoError(t, err)
	assert.Equal(t, quiz.ModeText, cfg.AnswerMode)

	cfg, err = FromEnv(envOf(map[string]string{"BOT_TOKEN": "t", "AUTHORING_MODE": "bulk", "ANSWER_MODE": "choice"}))
	require.NoError(t, err)
	assert.Equal(t, quiz.ModeChoice, cfg.AnswerMode)
}

func TestPostgresAndAdmins(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"BOT_TOKEN":       "t",
		"DB_DRIVER":       "postgres",
		"DATABASE_URL":    "postgres://u:p@db/quiz?sslmode=disable",
		"ADMIN_USERNAMES": " @Alice, bob ,,",
		"WORKERS":         "8",
		"HEALTH_ADDR":     ":8080",
		"DEBUG":           "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/quiz?sslmode=disable", cfg.DatabaseDSN)
	assert.Equal(t, []string{"@Alice", "bob"}, cfg.AdminUsernames)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.True(t, cfg.Debug)
}

func TestInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"no token":        {},
		"bad driver":      {"BOT_TOKEN": "t", "DB_DRIVER": "mysql"},
		"postgres no url": {"BOT_TOKEN": "t", "DB_DRIVER": "postgres"},
		"bad authoring":   {"BOT_TOKEN": "t", "AUTHORING_MODE": "wizard"},
		"bad answer":      {"BOT_TOKEN": "t", "ANSWER_MODE": "voice"},
		"bad duration":    {"BOT_TOKEN": "t", "QUIZ_DURATION": "week"},
		"zero duration":   {"BOT_TOKEN": "t", "QUIZ_DURATION": "0s"},
		"bad workers":     {"BOT_TOKEN": "t", "WORKERS": "many"},
		"zero workers":    {"BOT_TOKEN": "t", "WORKERS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
