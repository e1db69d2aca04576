package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"searchlab/internal/adapter/chunker"
	"searchlab/internal/adapter/embedding"
	"searchlab/internal/api"
	applog "searchlab/internal/platform/log"
	"searchlab/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the live per-session search API",
	Long: `Start the HTTP server exposing session-scoped document attachment,
strategy selection, ranked search and evaluation endpoints.

Environment overrides (also read from a .env file):
  SEARCHLAB_HOST  bind host
  SEARCHLAB_PORT  bind port`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg := GetConfig()

	host := cfg.Server.Host
	if v := os.Getenv("SEARCHLAB_HOST"); v != "" {
		host = v
	}
	port := cfg.Server.Port
	if v := os.Getenv("SEARCHLAB_PORT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SEARCHLAB_PORT %q: %w", v, err)
		}
		port = parsed
	}

	embedder := embedding.NewHashEmbedder(cfg.Index.Dimension)
	geo := chunker.Geometry{Window: cfg.Chunking.Window, Overlap: cfg.Chunking.Overlap}
	sessions, err := usecase.NewSessionManager(cfg.Chunking.Default, cfg.Index.Default, geo, embedder)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}

	server := api.NewServer(&api.ServerConfig{
		Host:         host,
		Port:         port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}, sessions, cfg.Search.TopK)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		applog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
