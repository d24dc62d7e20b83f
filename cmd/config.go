package cmd

import (
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/application/usecases/commands"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string  `env:"BOT_TOKEN,notEmpty"`
	BotDebug      bool    `env:"BOT_DEBUG"`
	AdminIDs      []int64 `env:"ADMIN_IDS" envSeparator:","`
	HTTPPort      string  `env:"HTTP_PORT" envDefault:"8080"`
	AdminAPIToken string  `env:"ADMIN_API_TOKEN"`
	Debug         bool    `env:"DEBUG"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"workshop"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	BroadcastDelay         time.Duration `env:"BROADCAST_DELAY" envDefault:"50ms"`
	BroadcastProgressEvery int           `env:"BROADCAST_PROGRESS_EVERY" envDefault:"10"`

	SweepSchedule     string        `env:"SWEEP_SCHEDULE" envDefault:"@every 1h"`
	SweepStartupDelay time.Duration `env:"SWEEP_STARTUP_DELAY" envDefault:"60s"`
	FeedbackDelay     time.Duration `env:"FEEDBACK_DELAY" envDefault:"24h"`
	StuckAcceptedAge  time.Duration `env:"STUCK_ACCEPTED_AGE" envDefault:"120h"`
	ReminderAge       time.Duration `env:"REMINDER_AGE" envDefault:"72h"`
	ReminderCooldown  time.Duration `env:"REMINDER_COOLDOWN" envDefault:"72h"`

	SpamKeywords     []string      `env:"SPAM_KEYWORDS" envSeparator:","`
	EventBufferSize  int           `env:"EVENT_BUFFER_SIZE" envDefault:"256"`
	ListenerWorkers  int           `env:"LISTENER_WORKERS" envDefault:"8"`
	IntakeSessionTTL time.Duration `env:"INTAKE_SESSION_TTL" envDefault:"24h"`
}

// LoadConfig reads the environment, after loading .env files when present.
// Variables already set in the environment win over .env values.
func LoadConfig(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	for _, id := range c.AdminIDs {
		if id <= 0 {
			problems = append(problems, fmt.Errorf("ADMIN_IDS: %d is not a user id", id))
		}
	}
	if c.BroadcastDelay < 0 {
		problems = append(problems, errors.New("BROADCAST_DELAY must not be negative"))
	}
	if c.BroadcastProgressEvery < 0 {
		problems = append(problems, errors.New("BROADCAST_PROGRESS_EVERY must not be negative"))
	}
	for name, d := range map[string]time.Duration{
		"FEEDBACK_DELAY":     c.FeedbackDelay,
		"STUCK_ACCEPTED_AGE": c.StuckAcceptedAge,
		"REMINDER_AGE":       c.ReminderAge,
		"INTAKE_SESSION_TTL": c.IntakeSessionTTL,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Errorf("%s must be positive", name))
		}
	}
	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SweepOptions() commands.SweepOptions {
	return commands.SweepOptions{
		FeedbackDelay:    c.FeedbackDelay,
		StuckAcceptedAge: c.StuckAcceptedAge,
		ReminderAge:      c.ReminderAge,
		ReminderCooldown: c.ReminderCooldown,
	}
}

func (c Config) BroadcastOptions() commands.BroadcastOptions {
	return commands.BroadcastOptions{
		Delay:         c.BroadcastDelay,
		ProgressEvery: c.BroadcastProgressEvery,
	}
}
