package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/internal/view/console"
	"github.com/rocketscienceinc/tictactoe/internal/view/tui"
	"github.com/rocketscienceinc/tictactoe/internal/view/web"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	settings := usecase.Settings{
		Rows:         conf.Board.Rows,
		Columns:      conf.Board.Columns,
		FirstPlayer:  conf.Players.First,
		SecondPlayer: conf.Players.Second,
	}

	switch conf.View {
	case config.ViewConsole:
		view := console.New(os.Stdin, os.Stdout, console.Options{NoColor: os.Getenv("NO_COLOR") != ""})
		defer view.Close()

		return play(ctx, logger, view, settings, conf.Rounds)
	case config.ViewTUI:
		return runTUI(ctx, logger, settings, conf.Rounds)
	case config.ViewWeb:
		return runWeb(ctx, logger, conf, settings)
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownView, conf.View)
	}
}

// play - runs the session. Leaving the game early is not an error.
func play(ctx context.Context, logger *slog.Logger, view tictactoe.View, settings usecase.Settings, rounds int) error {
	log := logger.With("component", "app", "method", "play")

	score, err := usecase.NewGameManager(logger, view, settings).Play(ctx, rounds)
	log.Info("session finished", "played", score.Played, "draws", score.Draws, "wins", score.Wins)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrInputClosed), errors.Is(err, context.Canceled):
		log.Info("session stopped early", "reason", err)
		return nil
	default:
		return fmt.Errorf("session failed: %w", err)
	}
}

func runTUI(ctx context.Context, logger *slog.Logger, settings usecase.Settings, rounds int) error {
	view := tui.New()
	view.Start()

	if err := play(ctx, logger, view, settings, rounds); err != nil {
		_ = view.Close()
		return err
	}

	// the last board stays on screen until the user quits
	if err := view.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return view.Close()
}

func runWeb(ctx context.Context, logger *slog.Logger, conf *config.Config, settings usecase.Settings) error {
	log := logger.With("component", "app", "method", "runWeb")

	view := web.New(logger)
	srv := rest.NewServer(conf.GetHTTPAddr(), view.Handler())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpErrCh := make(chan error, 1)
	go func() {
		err := rest.Serve(ctx, logger, srv)
		if err != nil {
			cancel()
		}
		httpErrCh <- err
	}()

	log.Info("Open the game in a browser", "url", "http://localhost"+conf.GetHTTPAddr())

	playErr := play(ctx, logger, view, settings, conf.Rounds)
	if playErr == nil && ctx.Err() == nil {
		log.Info("Game over, the page stays up until Ctrl+C")
		<-ctx.Done()
	}

	cancel()
	if err := <-httpErrCh; err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return playErr
}
