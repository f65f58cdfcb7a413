package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	reporthandlers "github.com/mkt-tools/ga-insight/pkg/handlers/report"
	"github.com/mkt-tools/ga-insight/pkg/server"
	"github.com/mkt-tools/ga-insight/pkg/services/analytics"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the GA4 report web server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	factory := func(ctx context.Context, propertyID string, credentials []byte) (reporthandlers.Service, error) {
		return analytics.NewReportBuilder(ctx, propertyID, credentials)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports: reporthandlers.NewHandler(factory),
		},
	})

	return webAPI.Start()
}
