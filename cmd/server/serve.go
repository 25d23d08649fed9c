package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron"
	"github.com/urfave/cli/v2"

	"github.com/maheshrc27/postpilot/internal/api/handlers"
	"github.com/maheshrc27/postpilot/internal/api/middleware"
	"github.com/maheshrc27/postpilot/internal/database"
	job "github.com/maheshrc27/postpilot/internal/jobs"
	"github.com/maheshrc27/postpilot/internal/queue"
)

func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API, scheduler and queue worker",
		Action: func(c *cli.Context) error {
			return serve(c)
		},
	}
}

func serve(c *cli.Context) error {
	app, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.cfg

	if err := database.RunMigrations(cfg.PostgresURI); err != nil {
		return err
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	server := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			log.Printf("Error: %v", err)
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	server.Use(logger.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	generate := handlers.NewGenerateHandler(app.generation)
	auth := handlers.NewAuthHandler(*cfg, app.auth, app.linkedIn)
	schedule := handlers.NewScheduleHandler(app.schedule)
	post := handlers.NewPostHandler(app.posts)
	diagnostics := handlers.NewTestHandler(app.content, app.auth)

	api := server.Group("/api")
	api.Get("/cron/generate-post", authMiddleware.OptionalSession(), generate.GeneratePosts)

	api.Get("/linkedin/auth", auth.LinkedInAuth)
	api.Get("/linkedin/callback", auth.LinkedInCallback)
	api.Get("/linkedin/status", authMiddleware.OptionalSession(), auth.Status)
	api.Post("/linkedin/disconnect", auth.Disconnect)
	api.Post("/linkedin/post", authMiddleware.RequireSession(), post.Publish)

	api.Get("/schedule", authMiddleware.RequireSession(), schedule.GetSchedule)
	api.Post("/schedule", authMiddleware.RequireSession(), schedule.UpdateSchedule)
	api.Get("/posts/today", authMiddleware.RequireSession(), post.TodayPosts)

	test := server.Group("/test")
	test.Get("/gemini", diagnostics.Gemini)
	test.Get("/linkedin", authMiddleware.RequireSession(), diagnostics.LinkedIn)

	// cron jobs
	generationJob := job.NewGenerationJob(client)
	refreshTokenJob := job.NewTokenRefreshJob(app.accountRepo, app.linkedIn)

	scheduler := cron.New()
	if err := scheduler.AddFunc(cfg.GenerateCron, generationJob.EnqueueDue); err != nil {
		return err
	}
	if err := scheduler.AddFunc(cfg.TokenRefreshCron, refreshTokenJob.RefreshTokens); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	//queue
	queueW := queue.NewQueue(app.generation)
	worker := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskTypeGeneratePosts, queueW.HandleGenerateTask)

	log.Println("Starting the Asynq server...")
	if err := worker.Start(mux); err != nil {
		return err
	}

	go func() {
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(server, worker)
	return nil
}

func gracefulShutdown(app *fiber.App, worker *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	worker.Shutdown()

	log.Println("Server shutdown complete.")
}
