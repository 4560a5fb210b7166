package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/fading-tictactoe/internal/config"
	"github.com/rocketscienceinc/fading-tictactoe/internal/repository"
	"github.com/rocketscienceinc/fading-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/fading-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/fading-tictactoe/transport/terminal"
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

	results, closer, err := openResults(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close results storage", "error", err)
		}
	}()

	gameUseCase, err := usecase.NewGameManager(logger, results, conf.Game.Settings())
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	server := terminal.New(logger, gameUseCase, conf.Palette)
	if err = server.Start(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	log.Info("Application stopped")

	return nil
}

// openResults - connects the results repository selected by the storage driver.
func openResults(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.ResultRepository, io.Closer, error) {
	log := logger.With("method", "openResults", "driver", conf.Storage.Driver)

	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("results are kept in redis", "addr", conf.Redis.GetRedisAddr())

		return repository.NewResultRepository(redisStorage.Connection), redisStorage, nil
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not prepare sqlite storage: %w", err)
		}

		log.Info("results are kept in sqlite", "path", conf.Storage.SQLitePath)

		return repository.NewSQLiteResultRepository(sqliteStorage.Connection), sqliteStorage, nil
	default:
		log.Info("results are kept in memory")

		return repository.NewMemoryResultRepository(), io.NopCloser(nil), nil
	}
}
