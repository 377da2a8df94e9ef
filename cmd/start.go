package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-sync/core/loader"
	"gallery-sync/core/logger"
	"gallery-sync/core/middleware/auth"
	"gallery-sync/core/middleware/rayid"
	"gallery-sync/feature/gallery"
	"gallery-sync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "gallery-sync/docs/swagger"
)

// @title Gallery Sync API
// @version 1.0
// @description Photo galleries indexed from object storage.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gallery server",
	Long:  `Starts the HTTP server, the periodic sync scheduler and all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rt, err := bootstrap(ctx, true, false)
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := rt.migrate(ctx); err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		syncer := rt.syncer()
		admin := auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey})
		if !rt.cfg.Server.AuthEnabled() {
			logg.Warn("No API key configured, admin routes are open")
		}

		mgr := loader.NewManager()
		mgr.Register(gallery.NewFeature(rt.gateway(), syncer, rt.metrics, admin, logg))
		mgr.Register(integrity.NewFeature(rt.client, rt.cfg.Storage.Bucket, rt.cfg.Gallery.BasePath, rt.db, admin, logg))

		// RayID first so every log line below carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request completed", fields...)
			return nil
		})

		app.Get("/swagger/*", swagger.HandlerDefault)
		if path := rt.cfg.Server.MetricsPath; path != "" {
			rt.metrics.Register(app, path)
		}

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		syncer.RunPeriodic(ctx, rt.cfg.Sync.Interval())

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			errCh <- app.Listen(rt.cfg.Server.Address())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-sig:
		}

		logg.Info("Shutting down server...")
		cancel()
		timeout := time.Duration(rt.cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return app.ShutdownWithTimeout(timeout)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
