package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-qr-keeper/internal/adapter"
	"github.com/MKhiriev/go-qr-keeper/internal/app"
	"github.com/MKhiriev/go-qr-keeper/internal/client"
	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("qr-keeper-client")

	if len(os.Args) > 1 && os.Args[1] == "-build-info" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := client.NewApp(serverAdapter, os.Stdin, os.Stdout, log)
	if err = cli.Run(ctx, args); err != nil {
		stop()
		os.Exit(report(err))
	}
}

// report prints err for the user and returns the exit code.
func report(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if hint := app.Hint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "error: %s (%v)\n", hint, err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}

	if errors.Is(err, client.ErrNoCommand) || errors.Is(err, client.ErrUnknownCommand) {
		return 2
	}
	return 1
}
