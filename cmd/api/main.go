package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"forum-backend/internal/config"
	"forum-backend/internal/handler"
	"forum-backend/internal/middleware"
	"forum-backend/internal/realtime"
	"forum-backend/internal/repository"
	"forum-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, db, err := config.NewMongo(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	redisClient, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(ctx, cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (uploads will not work)", err)
	}

	// The registry and publisher are constructed once here and injected;
	// nothing else may touch the membership map directly.
	registry := realtime.NewRegistry()
	publisher := realtime.NewPublisher(registry)

	repos := repository.NewRepositories(db, redisClient)
	services := service.NewServices(repos, minioClient, publisher, cfg)
	handlers := handler.NewHandlers(services, registry)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use("/ws", h.WS.UpgradeRequired)
	app.Get("/ws", h.WS.Serve())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout)

	authRequired := middleware.AuthRequired(services.Auth)

	topics := api.Group("/topics")
	topics.Get("/", h.Topic.List)
	topics.Get("/spaces", h.Topic.Spaces)
	topics.Get("/contributors", h.Topic.TopContributors)
	topics.Get("/:slug", h.Topic.Get)
	topics.Post("/", authRequired, h.Topic.Create)
	topics.Delete("/:topicId", authRequired, h.Topic.Delete)
	topics.Post("/:topicId/upvote", authRequired, h.Topic.Upvote)
	topics.Post("/:topicId/downvote", authRequired, h.Topic.Downvote)
	topics.Post("/:topicId/poll", authRequired, h.Topic.VoteOnPoll)

	comments := api.Group("/comments")
	comments.Get("/helpers", h.Comment.TopHelpers)
	comments.Get("/:topicId", h.Comment.List)
	comments.Post("/", authRequired, h.Comment.Create)
	comments.Post("/:commentId/upvote", authRequired, h.Comment.Upvote)
	comments.Post("/:commentId/downvote", authRequired, h.Comment.Downvote)
	comments.Delete("/:commentId", authRequired, h.Comment.Delete)

	media := api.Group("/media")
	media.Post("/upload", authRequired, h.Media.Upload)

	users := api.Group("/user")
	users.Get("/me", authRequired, h.User.Me)
	users.Put("/me", authRequired, h.User.UpdateProfile)
	users.Post("/me/avatar", authRequired, h.User.UploadAvatar)
	users.Get("/:username", h.User.GetProfile)
	users.Get("/:username/topics", h.User.Topics)
	users.Get("/:username/comments", h.User.Comments)
	users.Get("/:username/followers", h.User.Followers)
	users.Get("/:username/following", h.User.Following)
	users.Post("/:username/follow", authRequired, h.User.Follow)
	users.Post("/:username/unfollow", authRequired, h.User.Unfollow)
}
