// Command carpoolctl is the operator CLI: it applies schema migrations and
// creates administrator accounts, which the public API cannot do.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("carpoolctl failed", "error", err)
		os.Exit(1)
	}
}

var databaseURLFlag = &cli.StringFlag{
	Name:     "database-url",
	Usage:    "Postgres connection string",
	EnvVars:  []string{"DATABASE_URL"},
	Required: true,
}

// databaseURL returns --database-url. A variable exported as DATABASE_URL=
// satisfies the Required check, so emptiness is rejected here.
func databaseURL(c *cli.Context) (string, error) {
	dsn := strings.TrimSpace(c.String(databaseURLFlag.Name))
	if dsn == "" {
		return "", errors.New("database-url must not be empty")
	}
	return dsn, nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "carpoolctl",
		Usage: "operate the carpool database",
		Flags: []cli.Flag{databaseURLFlag},
		Commands: []*cli.Command{
			migrateCommand(),
			createAdminCommand(),
		},
	}
}
