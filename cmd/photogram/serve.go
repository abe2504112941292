package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/photogram/internal/database"
	"github.com/deppfellow/photogram/internal/handler"
	"github.com/deppfellow/photogram/internal/repository"
	"github.com/deppfellow/photogram/internal/router"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the background workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func serve(parent context.Context, migrate bool) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrate {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	r, err := wire(srv)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize services")
		return err
	}
	srv.SetupHTTPServer(r)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		release(srv)
		return err

	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

// wire builds the services and routes on top of srv. On failure srv is
// shut down so its connections and workers do not outlive the command.
func wire(srv *server.Server) (*echo.Echo, error) {
	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	if err != nil {
		release(srv)
		return nil, err
	}

	return router.NewRouter(srv, handler.NewHandlers(srv, services), services), nil
}

// release shuts srv down after a startup failure.
func release(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		srv.Logger.Error().Err(err).Msg("failed to release resources")
	}
}
