package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/pbrates/cmd/fetch"
	"github.com/sig-0/pbrates/cmd/serve"
	"github.com/sig-0/pbrates/cmd/sql"
)

func main() {
	// Load .env (if any) before the flags are bound to env vars
	_ = godotenv.Load() //nolint:errcheck // the file is optional

	fs := flag.NewFlagSet("root", flag.ExitOnError)

	// Create the root command
	cmd := &ffcli.Command{
		ShortUsage: "<sub-command> [flags] [<arg>...]",
		LongHelp:   "Fetches daily PrivatBank EUR / USD exchange rates",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
	}

	// Add the subcommands
	cmd.Subcommands = []*ffcli.Command{
		fetch.NewFetchCmd(),
		serve.NewServeCmd(),
		sql.NewSQLCmd(),
	}

	if err := cmd.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
