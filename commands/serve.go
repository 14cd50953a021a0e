package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uhppoted/uhppoted-app-tracker/api"
	"github.com/uhppoted/uhppoted-app-tracker/log"
)

var ServeCmd = Serve{
	bind:           "0.0.0.0:8080",
	maxConnections: 32,
}

// Serve exposes the data store as a JSON API.
type Serve struct {
	command
	bind           string
	maxConnections int
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the JSON API for the tracker dashboard"
}

func (cmd *Serve) Usage() string {
	return "[--bind <address>] [--max-connections <N>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Runs the JSON API for the tracker dashboard until interrupted. All requests share a single")
	fmt.Println("  data store, so reads are cached and the Google Sheets API calls are throttled across requests.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug serve --bind 127.0.0.1:8080\n", APP)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "API server address")
	flagset.IntVar(&cmd.maxConnections, "max-connections", cmd.maxConnections, "Maximum number of concurrent connections")

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Infof(LOG_TAG, "starting API server on %v", cmd.bind)

	if err := api.NewServer(s).ListenAndServe(ctx, cmd.bind, cmd.maxConnections); err != nil {
		return err
	}

	log.Infof(LOG_TAG, "API server stopped")

	return nil
}
