package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

const (
	ViewConsole = "console"
	ViewTUI     = "tui"
	ViewWeb     = "web"
)

var (
	ErrInvalidRounds   = errors.New("rounds must be at least 1")
	ErrSamePlayerNames = errors.New("players must have different names")
	ErrEmptyPlayerName = errors.New("player name is empty")
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrEmptyHTTPPort   = errors.New("http port is empty")
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	View     string  `yaml:"view" env:"VIEW" env-default:"console"`
	Rounds   int     `yaml:"rounds" env:"ROUNDS" env-default:"1"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Board    Board   `yaml:"board"`
	Players  Players `yaml:"players"`
}

type Board struct {
	Rows    int `yaml:"rows" env:"BOARD_ROWS" env-default:"3"`
	Columns int `yaml:"columns" env:"BOARD_COLUMNS" env-default:"3"`
}

type Players struct {
	First  string `yaml:"first" env:"PLAYER_ONE" env-default:"Player 1"`
	Second string `yaml:"second" env:"PLAYER_TWO" env-default:"Player 2"`
}

// Load - reads the yml file at path with env overrides. A missing file means env and defaults only.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// Validate - checks values that cleanenv can not check by tags.
func (that *Config) Validate() error {
	switch that.View {
	case ViewConsole, ViewTUI, ViewWeb:
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownView, that.View)
	}

	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	if that.Rounds < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRounds, that.Rounds)
	}

	if that.Players.First == "" || that.Players.Second == "" {
		return ErrEmptyPlayerName
	}

	if that.Players.First == that.Players.Second {
		return fmt.Errorf("%w: %q", ErrSamePlayerNames, that.Players.First)
	}

	if that.View == ViewWeb && that.HTTPPort == "" {
		return ErrEmptyHTTPPort
	}

	return nil
}

func (that *Config) GetHTTPAddr() string {
	return ":" + that.HTTPPort
}
