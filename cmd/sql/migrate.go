package sql

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/pbrates/cmd/env"
	dbpkg "github.com/sig-0/pbrates/storage/sql"
)

// migrateCfg wraps the migrate configuration
type migrateCfg struct {
	rootCfg *sqlCfg
}

// newMigrateCmd creates the migrate command
func newMigrateCmd(rootCfg *sqlCfg) *ffcli.Command {
	cfg := &migrateCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	rootCfg.RegisterFlags(fs)

	return &ffcli.Command{
		Name:       "migrate",
		ShortUsage: "sql migrate [migration.sql, migration2.sql ...]",
		LongHelp:   "Runs the given archive DB migrations (all of them, if none are given)",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *migrateCfg) exec(ctx context.Context, args []string) error {
	migrations := args
	if len(migrations) == 0 {
		all, err := embeddedMigrations()
		if err != nil {
			return err
		}

		migrations = all
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Unable to load .env file, using the environment")
	}

	dsn := c.rootCfg.dbURL
	if dsn == "" {
		dsn = os.Getenv(env.Prefix + env.DBURLSuffix)
	}

	if dsn == "" {
		return fmt.Errorf("missing %s", env.Prefix+env.DBURLSuffix)
	}

	// Open the DB
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("unable to open DB connection: %w", err)
	}

	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			fmt.Printf("Unable to gracefully close DB: %s\n", err.Error())
		}
	}()

	// Ping the DB
	if err = conn.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping DB: %w", err)
	}

	for _, name := range migrations {
		sqlBytes, err := dbpkg.SchemaFS.ReadFile(path.Join("schema", name))
		if err != nil {
			return fmt.Errorf("unable to read migration %q: %w", name, err)
		}

		fmt.Printf("Running migration %s...\n", name)

		if _, err := conn.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("unable to run migration %q: %w", name, err)
		}

		fmt.Printf("Migration %q complete\n", name)
	}

	fmt.Println("All migrations complete!")

	return nil
}

// embeddedMigrations lists the embedded migration file names, in order
func embeddedMigrations() ([]string, error) {
	entries, err := dbpkg.SchemaFS.ReadDir("schema")
	if err != nil {
		return nil, fmt.Errorf("unable to list migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}
