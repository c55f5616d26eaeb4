package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
	dsnEnv         = "ORDER_POSTGRES_DSN"
)

var errDSNRequired = errors.New(dsnEnv + " (or -dsn) is required")

type options struct {
	direction string
	steps     int
	dsn       string
}

func parseOptions(args []string, getenv func(string) string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.direction, "direction", "up", "migration direction: up|down|status|seed")
	fs.IntVar(&opts.steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	fs.StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN (fallback: "+dsnEnv+")")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// Позиционный аргумент приоритетнее флага: `migrate seed`.
	if fs.NArg() > 0 {
		opts.direction = fs.Arg(0)
	}
	opts.direction = strings.ToLower(strings.TrimSpace(opts.direction))
	switch opts.direction {
	case "up", "down", "status", "seed":
	default:
		return options{}, fmt.Errorf("unsupported direction: %s (use up|down|status|seed)", opts.direction)
	}

	opts.dsn = strings.TrimSpace(opts.dsn)
	if opts.dsn == "" {
		opts.dsn = strings.TrimSpace(getenv(dsnEnv))
	}
	if opts.dsn == "" {
		return options{}, errDSNRequired
	}
	return opts, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	store, err := postgres.Open(ctx, opts.dsn)
	if err != nil {
		return fmt.Errorf("open postgres store: %w", err)
	}
	defer store.Close()

	switch opts.direction {
	case "up":
		if err := store.MigrateUp(ctx, opts.steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
	case "down":
		steps := opts.steps
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
	case "seed":
		n, err := postgres.SeedProducts(ctx, store.DB(), domain.DefaultMenu())
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		_, _ = fmt.Fprintf(out, "seed ok: products=%d\n", n)
		return nil
	}

	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "migrate %s ok: version=%d applied=%d\n", opts.direction, version, count)
	return nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Getenv)
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
