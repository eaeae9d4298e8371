package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/phreshco/phresh/auth"
	"github.com/phreshco/phresh/config"
	"github.com/phreshco/phresh/server"
	"github.com/phreshco/phresh/store"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("phresh"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	logger := lgr.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	fmt.Println(print.MaybeHighlightJSON(cfg.Redacted()))

	db, err := store.Open(cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := store.NewRepositoryManager(db)
	repos.MustValidate()

	manager := auth.NewManager(repos.Users(), cfg,
		auth.WithManagerLogger(lgr.GetLogger("auth")),
		auth.WithHooks(auth.LogHooks{Logger: lgr.GetLogger("hooks")}),
	)

	registry, err := auth.NewRegistry(auth.DefaultBackends(cfg)...)
	if err != nil {
		logger.Error("failed to build backend registry", "error", err)
		os.Exit(1)
	}

	authenticator := auth.NewAuthenticator(manager, registry,
		auth.WithAuthenticatorLogger(lgr.GetLogger("auth")),
	)

	srv := server.New(authenticator, repos,
		server.WithLogger(lgr.GetLogger("http")),
	)

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Listen(cfg.HTTPAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
