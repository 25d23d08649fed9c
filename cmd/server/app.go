package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/database"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/service"
)

// components holds the process-wide clients and services, built once at startup.
type components struct {
	cfg    *config.Config
	db     *sql.DB
	gemini *service.GeminiClient

	accountRepo repository.AccountRepository
	postRepo    repository.PostRepository

	linkedIn   service.LinkedInService
	content    service.ContentService
	auth       service.AuthService
	generation service.GenerationService
	schedule   service.ScheduleService
	posts      service.PostService
}

func bootstrap(ctx context.Context) (*components, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.PostgresURI)
	if err != nil {
		return nil, err
	}

	c := &components{
		cfg:         cfg,
		db:          db,
		accountRepo: repository.NewAccountRepository(db),
		postRepo:    repository.NewPostRepository(db),
	}

	// Without a Gemini client every caption and prompt uses the fixed fallback text.
	var gen service.TextGenerator
	gemini, err := service.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		slog.Warn("gemini unavailable, fallback content only", "error", err)
	} else {
		c.gemini = gemini
		gen = gemini
	}

	c.linkedIn = service.NewLinkedInService(*cfg, c.accountRepo)
	c.content = service.NewContentService(gen)
	c.auth = service.NewAuthService(*cfg, c.accountRepo, c.linkedIn)
	c.generation = service.NewGenerationService(c.accountRepo, c.postRepo, c.content, c.linkedIn)
	c.schedule = service.NewScheduleService(c.accountRepo)
	c.posts = service.NewPostService(c.accountRepo, c.postRepo, c.linkedIn)

	return c, nil
}

func (c *components) Close() {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			slog.Info(err.Error())
		}
	}
	closeDB(c.db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}
