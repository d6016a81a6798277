package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/campusride/carpool/internal/repo"
	"github.com/campusride/carpool/internal/service"
)

func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create an administrator account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "login", Usage: "account login (at least 8 characters)", Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password (at least 8 characters)", EnvVars: []string{"ADMIN_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			dsn, err := databaseURL(c)
			if err != nil {
				return err
			}
			pool, err := pgxpool.New(c.Context, dsn)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer pool.Close()

			// Token issuing is not needed to create an account.
			accounts := service.NewAccountService(repo.NewUserRepo(pool), nil)
			user, err := accounts.CreateAdmin(c.Context, c.String("login"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "administrator %s created (%s)\n", user.Login, user.ID)
			return nil
		},
	}
}
