package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RedArtelerist/OnlineBookStore/internal/constants"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
)

func Start() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger := log.InitLogger("/var/log/bookstore.log", env).
		With().
		Str(log.KeyAppName, constants.AppBookstore).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: constants.AppBookstore}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the bookstore server",
		Run: func(cmd *cobra.Command, args []string) {
			RunBookstore(cmd.Context())
		},
	})
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
