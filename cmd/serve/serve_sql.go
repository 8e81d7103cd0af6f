package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/pbrates/cmd/env"
	"github.com/sig-0/pbrates/storage/sql"
)

type serveSQLCfg struct {
	rootCfg *serveCfg
}

// newServeSQLCmd creates the serve sql command
func newServeSQLCmd(rootCfg *serveCfg) *ffcli.Command {
	cfg := &serveSQLCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("sql", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "sql",
		ShortUsage: "serve sql [flags]",
		LongHelp:   "Serves the pbrates API, archiving to an SQL datastore",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

// exec executes the server serve command
func (c *serveSQLCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if err := c.rootCfg.loadConfig(); err != nil {
		return fmt.Errorf("unable to read server config, %w", err)
	}

	// Create a new logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// DB
	dsn := os.Getenv(env.Prefix + env.DBURLSuffix)
	if dsn == "" {
		return fmt.Errorf("missing %s", env.Prefix+env.DBURLSuffix)
	}

	// Open the DB pool, handlers archive concurrently
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("unable to open DB pool: %w", err)
	}

	defer pool.Close()

	// Check DB reachability
	pingCtx, cancelPing := context.WithTimeout(ctx, time.Second*5)
	defer cancelPing()

	if err = pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("unable to reach DB (ping): %w", err)
	}

	logger.Info("DB ping success")

	return serveStore(ctx, c.rootCfg.config, logger, sql.NewStorage(pool))
}
