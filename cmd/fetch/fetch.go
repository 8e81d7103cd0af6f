package fetch

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/pbrates/cmd/env"
	"github.com/sig-0/pbrates/ingest"
	"github.com/sig-0/pbrates/provider/privatbank"
	"github.com/sig-0/pbrates/server/config"
	"github.com/sig-0/pbrates/storage/types"
)

// fetchCfg wraps the fetch configuration
type fetchCfg struct {
	config *config.Fetch

	out    io.Writer // rendered rates
	logOut io.Writer // logs and fetch diagnostics

	configPath string
	verbose    bool
}

// NewFetchCmd creates the fetch subcommand
func NewFetchCmd() *ffcli.Command {
	cfg := &fetchCfg{
		config: config.DefaultFetchConfig(),
		out:    os.Stdout,
		logOut: os.Stderr,
	}

	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "fetch",
		ShortUsage: "fetch [flags] [days]",
		ShortHelp:  "Fetches the rates for the last 1-10 days",
		LongHelp: "Fetches the EUR and USD rates for the given number of days " +
			"(1 to 10, default 1), today first, and prints them as JSON",
		FlagSet: fs,
		Exec:    cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *fetchCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.BaseURL,
		"base-url",
		privatbank.DefaultBaseURL,
		"the archive exchange rates endpoint",
	)

	fs.StringVar(
		&c.config.Timeout,
		"timeout",
		privatbank.DefaultTimeout.String(),
		"the per-day request timeout",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the TOML configuration, if any (its [fetch] section is used)",
	)

	fs.BoolVar(
		&c.verbose,
		"verbose",
		false,
		"enables debug logging",
	)
}

func (c *fetchCfg) exec(ctx context.Context, args []string) error {
	// Validate the day count before anything else
	var rawDays string
	if len(args) > 0 {
		rawDays = args[0]
	}

	days, err := ingest.ParseDays(rawDays)
	if err != nil {
		return err
	}

	// Read the fetch configuration, if any
	if c.configPath != "" {
		fileCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read config, %w", err)
		}

		c.config = fileCfg.Fetch
	}

	if err = config.ValidateFetchConfig(c.config); err != nil {
		return fmt.Errorf("invalid fetch configuration, %w", err)
	}

	timeout, _ := c.config.TimeoutDuration() //nolint:errcheck // validated above

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(c.logOut, &slog.HandlerOptions{
		Level: level,
	}))

	client := privatbank.NewClient(
		c.config.BaseURL,
		timeout,
		privatbank.WithLogger(logger),
	)

	orchestrator := ingest.New(client, ingest.WithLogger(logger))

	body, err := types.RenderAggregate(orchestrator.Run(ctx, days))
	if err != nil {
		return fmt.Errorf("unable to render rates: %w", err)
	}

	if _, err = fmt.Fprintln(c.out, string(body)); err != nil {
		return fmt.Errorf("unable to write rates: %w", err)
	}

	return nil
}
