package serve

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/pbrates/cmd/env"
	"github.com/sig-0/pbrates/provider/privatbank"
	"github.com/sig-0/pbrates/server/config"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	cmd := &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve <subcommand> [flags]",
		ShortHelp:  "Serves the pbrates HTTP API",
		LongHelp:   "Serves the pbrates HTTP API, archiving every fetched day",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}

	cmd.Subcommands = []*ffcli.Command{
		newServeSQLCmd(cfg),
		newServeMemoryCmd(cfg),
	}

	return cmd
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the server",
	)

	fs.StringVar(
		&c.config.Fetch.BaseURL,
		"base-url",
		privatbank.DefaultBaseURL,
		"the archive exchange rates endpoint",
	)

	fs.StringVar(
		&c.config.Fetch.Timeout,
		"timeout",
		privatbank.DefaultTimeout.String(),
		"the per-day request timeout",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)
}

// loadConfig replaces the flag configuration with the file one, if any
func (c *serveCfg) loadConfig() error {
	if c.configPath == "" {
		return nil
	}

	serverCfg, err := config.Read(c.configPath)
	if err != nil {
		return err
	}

	c.config = serverCfg

	return nil
}
