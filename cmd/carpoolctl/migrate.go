package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v2"

	"github.com/campusride/carpool/migrations"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply or inspect schema migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: withProvider(func(c *cli.Context, p *goose.Provider) error {
					results, err := p.Up(c.Context)
					if err != nil {
						return fmt.Errorf("migrate up: %w", err)
					}
					for _, r := range results {
						slog.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
					}
					if len(results) == 0 {
						slog.Info("schema already up to date")
					}
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "roll back the most recent migration",
				Action: withProvider(func(c *cli.Context, p *goose.Provider) error {
					r, err := p.Down(c.Context)
					if err != nil {
						return fmt.Errorf("migrate down: %w", err)
					}
					slog.Info("migration rolled back", "version", r.Source.Version, "path", r.Source.Path)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "list migrations and whether they are applied",
				Action: withProvider(func(c *cli.Context, p *goose.Provider) error {
					statuses, err := p.Status(c.Context)
					if err != nil {
						return fmt.Errorf("migrate status: %w", err)
					}
					for _, s := range statuses {
						fmt.Fprintf(c.App.Writer, "%-5d %-10s %s\n", s.Source.Version, s.State, s.Source.Path)
					}
					return nil
				}),
			},
		},
	}
}

// withProvider opens the database named by --database-url and hands a goose
// provider over it to action.
func withProvider(action func(*cli.Context, *goose.Provider) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dsn, err := databaseURL(c)
		if err != nil {
			return err
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(c.Context); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		p, err := migrations.NewProvider(db)
		if err != nil {
			return fmt.Errorf("create goose provider: %w", err)
		}
		return action(c, p)
	}
}
