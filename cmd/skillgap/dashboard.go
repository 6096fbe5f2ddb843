package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"skill-gap/internal/app"
	"skill-gap/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the interactive skill gap dashboard",
	Long:  "Starts the HTTP dashboard for the demo job. Levels are kept per browser session in Redis when configured, otherwise in memory.",
	RunE:  runDashboard,
}

var dashboardPort string

func init() {
	dashboardCmd.Flags().StringVar(&dashboardPort, "port", "", "Port to listen on (default from HTTP_PORT)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if dashboardPort != "" {
		cfg.App.HTTPPort = dashboardPort
	}
	log := initLogger(cfg)

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Warn().Err(err).Msg("cleanup")
		}
	}()

	server := app.New(container)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return container.Hub.Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("dashboard listening")
		return server.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Fiber.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("dashboard stopped")
	return nil
}
