// Command photogram runs the Photogram API server and its database
// migrations.
package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/photogram/internal/config"
	"github.com/deppfellow/photogram/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           config.ServiceName,
		Short:         "Photo sharing API: users, passports, photos and likes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())

	return root
}

// bootstrap loads the configuration and builds the logger. Callers must
// Shutdown the returned LoggerService.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}
