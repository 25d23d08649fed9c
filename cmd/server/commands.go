package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/database"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

func NewMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database migrations",
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig()
			if cfg.PostgresURI == "" {
				return fmt.Errorf("POSTGRES_URI is not set")
			}
			if err := database.RunMigrations(cfg.PostgresURI); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}
}

func NewGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "run one generation pass now and print the result",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "account",
				Usage: "only process this account id",
			},
		},
		Action: func(c *cli.Context) error {
			app, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.generation.Run(c.Context, transfer.Trigger{AccountID: c.Int64("account")})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
