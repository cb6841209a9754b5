package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trieplace/trieplace/internal/web"
)

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(app)
		},
	}
}

func runServer(app *App) error {
	handlers := &web.Handlers{
		Dict:          app.Dict,
		Tokenizer:     app.Tokenizer,
		RegexCache:    app.RegexCache,
		Logger:        app.Logger,
		JWTSigningKey: app.Config.Server.JWTSigningKey,
	}
	if app.Store != nil {
		handlers.Persist = func(key, value string) error { return app.Store.Set(key, value, 0) }
		handlers.Remove = app.Store.Delete
	}

	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: web.NewRouter(handlers),
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		app.Logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
