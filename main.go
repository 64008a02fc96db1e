package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"go-gia/config"
	"go-gia/logger"
	"go-gia/metrics"
	"go-gia/routes"
	"go-gia/types"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "gia",
		Short:        "G.I.A. Protocol API: geopolitical events and their local impact",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newEventsCmd(&configPath),
		newAnalyzeCmd(&configPath),
	)

	// Plain `gia` runs the server.
	serve := newServeCmd(&configPath)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			log, err := logger.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if cfg.GinMode != "" {
				gin.SetMode(cfg.GinMode)
			}

			m := metrics.New()
			feed, analyzer := buildServices(cfg, log, m)
			if cfg.News.APIKey == "" {
				log.Warn("NEWS_API_KEY not set, /api/events serves fallback data")
			}
			if cfg.AI.APIKey == "" {
				log.Warn("GEMINI_API_KEY not set, /api/analyze serves fallback data")
			}

			srv := &http.Server{
				Addr: cfg.Addr(),
				Handler: routes.SetupRouter(routes.Dependencies{
					Events:   feed,
					Analyzer: analyzer,
					Metrics:  m,
					Log:      log,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Infof("listening on %s", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func newEventsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Fetch the event feed once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			// stdout carries the JSON result.
			log, err := logger.NewWithConsole(cfg.Log.Level, cfg.Log.File, os.Stderr)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			feed, _ := buildServices(cfg, log, nil)
			list, origin := feed.List(ctx)
			fmt.Fprintf(os.Stderr, "Served %d events (%s)\n", len(list), origin)
			return printJSON(list)
		},
	}
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "analyze <event>",
		Short: "Analyze the local impact of an event and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.NewWithConsole(cfg.Log.Level, cfg.Log.File, os.Stderr)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			event, location, err := analyzeArgs(args[0], location)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			_, analyzer := buildServices(cfg, log, nil)
			return printJSON(analyzer.Analyze(ctx, event, location))
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", types.DefaultLocation, "where the impact is felt")
	return cmd
}

// analyzeArgs applies the same trimming and defaults as POST /api/analyze.
func analyzeArgs(event, location string) (string, string, error) {
	event = strings.TrimSpace(event)
	if event == "" {
		return "", "", types.ErrEventRequired
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = types.DefaultLocation
	}
	return event, location, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
