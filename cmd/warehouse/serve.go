package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpRouter "github.com/jhoicas/hotel-warehouse/internal/interfaces/http"
)

const swaggerFile = "./docs/swagger.json"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			log.Info().
				Str("env", cfg.App.Env).
				Str("app", cfg.App.Name).
				Str("store", cfg.Local.Path).
				Msg("starting")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApplication(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			go a.mirror.Run(ctx)

			app := fiber.New(fiber.Config{
				AppName:      cfg.App.Name,
				ReadTimeout:  time.Second * 10,
				WriteTimeout: time.Second * 30,
				IdleTimeout:  time.Second * 60,
			})
			app.Use(recover.New())
			app.Use(httpRouter.RequestLogger(log.Component("http")))

			// Swagger UI at /docs when docs/swagger.json has been generated.
			if _, err := os.Stat(swaggerFile); err == nil {
				app.Use(swagger.New(swagger.Config{
					BasePath: "/",
					FilePath: swaggerFile,
					Path:     "docs",
					Title:    cfg.App.Name,
				}))
			}

			app.Get("/health", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{
					"status":  "ok",
					"service": cfg.App.Name,
					"sync":    a.mirror.Status().State,
				})
			})

			httpRouter.Router(app, a.deps)

			go func() {
				if err := app.Listen(cfg.HTTP.Addr()); err != nil {
					log.Error().Err(err).Msg("HTTP server stopped")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("shutdown signal received, closing server")
			cancel()

			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown")
			}

			log.Info().Msg("stopped")
			return nil
		},
	}
}
