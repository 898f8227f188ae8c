package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clan-bingo-system/handlers"
	"clan-bingo-system/middleware"
	"clan-bingo-system/models"
	"clan-bingo-system/services"
	"clan-bingo-system/utils"
	"clan-bingo-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // screenshots only
	})

	app.Use(middleware.ServiceTokenMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Requested-With, X-Request-ID, X-Service-Token, X-Player-ID, X-Display-Name",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	if err := utils.InitRedis(); err != nil {
		log.Fatal("failed to connect to Redis:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.BingoEvent{},
		&models.Team{},
		&models.TileCompletion{},
		&models.TeamMembership{},
		&models.Profile{},
		&models.ChatMessage{},
		&models.EventInvitation{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	app.Use(middleware.ActorContext(db))

	scoringService := services.NewScoringService(db, utils.Redis())
	chatService := services.NewChatService(db)
	eventService := services.NewEventService(db)
	teamService := services.NewTeamService(db, scoringService)
	completionService := services.NewCompletionService(db, scoringService)
	powerupService := services.NewPowerupService(db, scoringService, chatService)
	profileService := services.NewProfileService(db)
	invitationService := services.NewInvitationService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncClient := workers.NewAggregateSyncClient(db, scoringService)
	go workers.PollAggregates(ctx, syncClient, 30*time.Second)

	eventService.StartLifecycleScheduler()

	handlers.SetupEventRoutes(app, eventService, teamService)
	handlers.SetupCompletionRoutes(app, completionService)
	handlers.SetupPowerupRoutes(app, powerupService)
	handlers.SetupStatsRoutes(app, scoringService)
	handlers.SetupSocialRoutes(app, profileService, chatService, invitationService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Event lifecycle scheduler running (every 1m)")
	log.Println("✅ Aggregate drift repair running (every 30s)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
