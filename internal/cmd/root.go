package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
	"github.com/rocketscienceinc/tictactoe/internal/config"
)

const (
	defaultConfigPath = "./config.yml"
	defaultEnvFile    = ".env"
	tuiLogFile        = "tictactoe.log"
)

// Root - the tictactoe command. Flags override values from the config file and the environment.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe in the terminal or in a browser",
		Long: heredoc.Doc(`
			Two players take turns placing X and O on the board.
			The first to fill a row, a column or a diagonal wins.

			Views:
			  console  plain text, moves are typed as "row column"
			  tui      arrow keys to move, enter to place a mark
			  web      a page served on --port, click a cell to place a mark
		`),
		Example: heredoc.Doc(`
			$ tictactoe
			$ tictactoe --view tui --rounds 3
			$ tictactoe --view web --port 8080 --player-one Alice --player-two Bob
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: run,
	}

	flags := root.Flags()
	flags.StringP("config", "c", defaultConfigPath, "path to the yml config file")
	flags.String("env-file", defaultEnvFile, "dotenv file loaded into the environment before the config")
	flags.String("view", config.ViewConsole, "how the game is shown: console, tui or web")
	flags.Int("rows", 3, "board rows")
	flags.Int("columns", 3, "board columns")
	flags.String("player-one", "", "name of the player with X")
	flags.String("player-two", "", "name of the player with O")
	flags.IntP("rounds", "r", 1, "rounds to play, the starting player alternates")
	flags.StringP("port", "p", "", "http port for the web view")
	flags.String("log-level", "", "debug, info, warn or error")

	return root
}

func run(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(cmd); err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	conf, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err = applyFlags(cmd, conf); err != nil {
		return err
	}

	if err = conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := io.Writer(os.Stderr)
	if conf.View == config.ViewTUI {
		logFile, err := tea.LogToFile(tuiLogFile, "tictactoe")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()

		out = logFile
	}

	return app.RunApp(initLogger(out, conf), conf)
}

// loadEnvFile - the default file is optional, one named on the command line is not.
// Variables already set in the environment win.
func loadEnvFile(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}

	if _, err = os.Stat(path); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}

	if err = godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

// applyFlags - copies every flag set on the command line into conf.
func applyFlags(cmd *cobra.Command, conf *config.Config) error {
	flags := cmd.Flags()

	texts := map[string]*string{
		"view":       &conf.View,
		"player-one": &conf.Players.First,
		"player-two": &conf.Players.Second,
		"port":       &conf.HTTPPort,
		"log-level":  &conf.LogLevel,
	}
	for name, target := range texts {
		if !flags.Changed(name) {
			continue
		}

		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*target = value
	}

	ints := map[string]*int{
		"rows":    &conf.Board.Rows,
		"columns": &conf.Board.Columns,
		"rounds":  &conf.Rounds,
	}
	for name, target := range ints {
		if !flags.Changed(name) {
			continue
		}

		value, err := flags.GetInt(name)
		if err != nil {
			return err
		}
		*target = value
	}

	return nil
}

// initialize logger.
func initLogger(out io.Writer, conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
