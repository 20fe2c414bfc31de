package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	apperrors "studylog/internal/platform/errors"
)

const (
	stateDirName   = ".studylog"
	configFileName = "config.toml"
	envFileName    = ".env"
)

type Config struct {
	VaultPath  string
	StateDir   string
	DBPath     string
	Location   *time.Location
	GoalPeriod string
	Notify     bool
	LogLevel   string
	Subjects   []string
	Admin      AdminSeed
	Report     ReportConfig
}

type AdminSeed struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

type ReportConfig struct {
	Template string `toml:"template"`
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	Timezone   string       `toml:"timezone"`
	GoalPeriod string       `toml:"goal_period"`
	Notify     *bool        `toml:"notify"`
	LogLevel   string       `toml:"log_level"`
	Subjects   []string     `toml:"subjects"`
	Admin      AdminSeed    `toml:"admin"`
	Report     ReportConfig `toml:"report"`
}

func defaults() fileConfig {
	notify := false
	return fileConfig{
		Timezone:   "Local",
		GoalPeriod: "month",
		Notify:     &notify,
		LogLevel:   "warn",
		Subjects:   []string{"Math", "Physics", "Chemistry", "Biology", "History", "Literature", "Programming"},
		Admin: AdminSeed{
			Name:     "Administrator",
			Email:    "admin@studylog.local",
			Password: "admin123",
		},
	}
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	stateDir := filepath.Join(vaultPath, stateDirName)

	fc := defaults()
	if err := loadFile(filepath.Join(stateDir, configFileName), &fc); err != nil {
		return Config{}, err
	}
	env, err := loadEnv(filepath.Join(vaultPath, envFileName))
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&fc, env); err != nil {
		return Config{}, err
	}

	loc, err := resolveLocation(fc.Timezone)
	if err != nil {
		return Config{}, err
	}
	period := strings.ToLower(strings.TrimSpace(fc.GoalPeriod))
	if period != "week" && period != "month" {
		return Config{}, fmt.Errorf("%w: goal_period must be week or month, got %q", apperrors.ErrInvalidInput, fc.GoalPeriod)
	}

	return Config{
		VaultPath:  vaultPath,
		StateDir:   stateDir,
		DBPath:     filepath.Join(stateDir, "studylog.db"),
		Location:   loc,
		GoalPeriod: period,
		Notify:     fc.Notify != nil && *fc.Notify,
		LogLevel:   fc.LogLevel,
		Subjects:   fc.Subjects,
		Admin:      fc.Admin,
		Report:     fc.Report,
	}, nil
}

func loadFile(path string, fc *fileConfig) error {
	if _, err := toml.DecodeFile(path, fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// loadEnv merges the vault .env file under the process environment.
func loadEnv(path string) (map[string]string, error) {
	values := map[string]string{}
	fileValues, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for k, v := range fileValues {
		values[k] = v
	}
	for _, key := range []string{"STUDYLOG_TIMEZONE", "STUDYLOG_LOG_LEVEL", "STUDYLOG_NOTIFY", "STUDYLOG_GOAL_PERIOD", "STUDYLOG_ADMIN_EMAIL", "STUDYLOG_ADMIN_PASSWORD"} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}
	return values, nil
}

func applyEnv(fc *fileConfig, env map[string]string) error {
	if v := env["STUDYLOG_TIMEZONE"]; v != "" {
		fc.Timezone = v
	}
	if v := env["STUDYLOG_LOG_LEVEL"]; v != "" {
		fc.LogLevel = v
	}
	if v := env["STUDYLOG_GOAL_PERIOD"]; v != "" {
		fc.GoalPeriod = v
	}
	if v := env["STUDYLOG_NOTIFY"]; v != "" {
		notify, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: STUDYLOG_NOTIFY: %v", apperrors.ErrInvalidInput, err)
		}
		fc.Notify = &notify
	}
	if v := env["STUDYLOG_ADMIN_EMAIL"]; v != "" {
		fc.Admin.Email = v
	}
	if v := env["STUDYLOG_ADMIN_PASSWORD"]; v != "" {
		fc.Admin.Password = v
	}
	return nil
}

func resolveLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", apperrors.ErrInvalidInput, name, err)
	}
	return loc, nil
}
