// пакеты исполняемых приложений должны называться main
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/wurt83ow/trivia-ext/internal/logger"
	"github.com/wurt83ow/trivia-ext/internal/metrics"
	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
	"github.com/wurt83ow/trivia-ext/internal/store/memory"
	"github.com/wurt83ow/trivia-ext/internal/store/pg"
	"github.com/wurt83ow/trivia-ext/internal/store/redis"
)

// заполняются при сборке через -ldflags "-X main.buildVersion=..."
var (
	buildVersion = "v0.0.0"
	buildCommit  = "0000000000000000000000000000000000000000"
	buildDate    = "0001-01-01 00:00:00 +0000 UTC"
	buildBy      = "dev"
)

const shutdownTimeout = 5 * time.Second

// функция main вызывается автоматически при запуске приложения
func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		panic(err)
	}
}

func run(cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	ctx := context.Background()

	journal, closeJournal, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeJournal()

	// создаём экземпляр приложения, передавая реализацию журнала в качестве внешней зависимости
	appInstance := newApp(journal, metrics.New(), models.BuildInfo{
		Version: buildVersion,
		Commit:  buildCommit,
		BuiltAt: buildDate,
		BuiltBy: buildBy,
	})

	srv := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: appInstance.routes(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		if cfg.tls() {
			logger.Log.Info("Running server with TLS", zap.String("address", cfg.RunAddr))
			serverErrors <- srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		logger.Log.Info("Running server", zap.String("address", cfg.RunAddr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-shutdown:
		logger.Log.Info("start shutdown", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown did not complete", zap.Duration("timeout", shutdownTimeout), zap.Error(err))
			return srv.Close()
		}
		logger.Log.Info("server stopped gracefully")
		return nil
	}
}

// openStore выбирает журнал результатов: PostgreSQL, Redis или память процесса
func openStore(ctx context.Context, cfg config) (store.Store, func(), error) {
	switch {
	case cfg.DatabaseDSN != "":
		// создаём соединение к СУБД PostgreSQL
		conn, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}

		s := pg.NewStore(conn)
		if err := s.Bootstrap(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		logger.Log.Info("using PostgreSQL results journal")
		return s, func() { conn.Close() }, nil

	case cfg.RedisAddr != "":
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Log.Info("using Redis results journal", zap.String("address", cfg.RedisAddr))
		return s, func() { s.Close() }, nil

	default:
		logger.Log.Info("using in-memory results journal")
		return memory.NewStore(), func() {}, nil
	}
}
