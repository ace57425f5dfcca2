// Command airwatch is a headless viewer: it polls the sensor store and
// prints the selected scope, its score and the device states.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"airquality_dashboard/internal/client"
	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/models"

	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("airwatch", pflag.ContinueOnError)
	addr := flags.String("addr", envOr("AIRWATCH_ADDR", "http://localhost:3000"), "sensor store base URL")
	scope := flags.String("scope", "", `room to show, or "all"; default follows the store's selected room`)
	poll := flags.Duration("poll", client.DefaultPollInterval, "snapshot refresh interval")
	status := flags.Duration("status", client.DefaultStatusInterval, "health check interval")
	level := flags.String("log-level", logger.WarnLevel, "debug | info | warn | error")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *poll <= 0 || *status <= 0 {
		fmt.Fprintln(os.Stderr, "--poll and --status must be positive")
		os.Exit(2)
	}

	log := logger.New(*level, os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	v := client.NewViewer(client.New(*addr), models.Scope(*scope), os.Stdout, log)
	v.Run(ctx, *poll, *status)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
