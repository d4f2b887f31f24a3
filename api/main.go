package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/rogerio-castellano/loja-api/internal/auth"
	"github.com/rogerio-castellano/loja-api/internal/config"
	"github.com/rogerio-castellano/loja-api/internal/db"
	"github.com/rogerio-castellano/loja-api/internal/logging"
)

//go:generate swag init -g api/main.go -d ../ -o ../internal/docs --outputTypes go

// Variables set at build time with -ldflags "-X main.Version=..."
var (
	Version   = "dev"
	GitHash   string
	BuildDate string
)

const envPrefix = "LOJA"

// @title Loja API
// @version 1.0
// @description REST API for the produtos resource.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := &cli.App{
		Name:     "loja-api",
		Usage:    "Run the product API or administer its database",
		Compiled: time.Now(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{envPrefix + "_CONFIG"}, Usage: "Path to a YAML config file"},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(c *cli.Context) error {
					fmt.Printf("Version=%s\nCommit=%s\nBuildDate=%s\n", Version, GitHash, BuildDate)
					return nil
				},
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", EnvVars: []string{envPrefix + "_MIGRATE"}, Usage: "Apply pending migrations before serving"},
					&cli.BoolFlag{Name: "memory", Usage: "Keep products in memory instead of Postgres"},
				},
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Manage the database schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "Apply all pending migrations", Action: migrateAction(db.MigrateUp)},
					{Name: "down", Usage: "Roll back the latest migration", Action: migrateAction(db.MigrateDown)},
					{Name: "status", Usage: "Show applied migrations", Action: migrateAction(db.MigrateStatus)},
				},
			},
			{
				Name:  "token",
				Usage: "Mint a bearer token for the write endpoints",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Required: true, Usage: "Token subject, usually a user or client name"},
					&cli.DurationFlag{Name: "ttl", Usage: "Token lifetime (defaults to auth.token_ttl)"},
				},
				Action: mintToken,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("loja-api failed")
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}

// migrateAction runs fn against the configured database.
func migrateAction(fn func(*sql.DB, zerolog.Logger) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.Log)

		database, err := db.Connect(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close()

		return fn(database, logger)
	}
}

func mintToken(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is not configured")
	}

	ttl := cfg.Auth.TokenTTL
	if c.IsSet("ttl") {
		ttl = c.Duration("ttl")
	}

	token, err := auth.GenerateToken([]byte(cfg.Auth.JWTSecret), c.String("subject"), ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
