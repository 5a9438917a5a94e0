package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/marquee/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the local read-only JSON API.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireMetadata(); err != nil {
		return err
	}
	if err := r.requireFavorites(); err != nil {
		return err
	}
	if err := r.requireDatabase(); err != nil {
		return err
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewRouter(r.logger, r.identity, r.metadata, r.accessor, r.reviews)

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	r.logger.Info("serving local API", "addr", addr)
	r.writePlain("Listening on http://%s\n", addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
