package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveenspark/catalyst/internal/fixture"
)

const defaultFixtureAddr = "localhost:8787"

func newFixtureCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Local sample content source",
	}

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bundled sample catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			programs, err := fixture.Programs()
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			e.logger.Info().
				Str("addr", ln.Addr().String()).
				Int("programs", len(programs)).
				Msg("serving fixture catalog")
			return serveFixture(cmd.Context(), ln, fixture.New(programs, e.logger), e.logger)
		},
	}
	serve.Flags().StringVar(&addr, "addr", defaultFixtureAddr, "listen address")

	cmd.AddCommand(serve)
	return cmd
}

// serveFixture serves srv on ln until ctx is cancelled.
func serveFixture(ctx context.Context, ln net.Listener, srv *fixture.Server, logger zerolog.Logger) error {
	hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- hs.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("fixture server: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("shutting down fixture server")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutCtx)
	}
}
