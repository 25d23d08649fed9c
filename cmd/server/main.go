package main

import (
	"log"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	app := &cli.App{
		Name:  "postpilot",
		Usage: "generate and publish daily LinkedIn posts",
		Commands: []*cli.Command{
			NewServeCommand(),
			NewMigrateCommand(),
			NewGenerateCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln("error", err)
	}
}
