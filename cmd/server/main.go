package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jobdeck/api/internal/config"
	"github.com/jobdeck/api/internal/domain/fiber/handler"
	"github.com/jobdeck/api/internal/middleware"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/repository"
	"github.com/jobdeck/api/internal/scheduler"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()
	rdb := ConnectRedis(ctx)

	jobRepo := repository.NewJobRepository(db)
	filterRepo := repository.NewFilterRepository(db)
	userRepo := repository.NewUserRepository(db)
	termRepo := repository.NewSearchTermRepository(db)

	authService := service.NewAuthService(config.LoadAuthConfig().ProviderURL, userRepo)
	analytics := service.NewAnalyticsService(rdb, filterRepo, termRepo)

	jobUC := usecase.NewJobUsecase(jobRepo, analytics)
	filterUC := usecase.NewFilterUsecase(filterRepo)
	userUC := usecase.NewUserUsecase(userRepo)

	if email := config.LoadAuthConfig().SuperAdminEmail; email != "" {
		if err := userUC.EnsureSuperAdmin(ctx, email); err != nil {
			log.Fatal(err)
		}
	}

	handler.NewJobHandler(jobUC, authService).RegisterRoutes(app)
	handler.NewFilterHandler(filterUC, authService).RegisterRoutes(app)
	handler.NewAdminHandler(jobUC, userUC, analytics, authService).RegisterRoutes(app)

	flusher := scheduler.New(analytics, "@every 5m")
	if err := flusher.Start(); err != nil {
		log.Fatal(err)
	}
	defer flusher.Stop()

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Job{},
		&model.FilterCategory{},
		&model.FilterValue{},
		&model.User{},
		&model.SearchTerm{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}

// ConnectRedis returns nil when REDIS_URL is unset; analytics then degrade
// to no-ops instead of blocking startup.
func ConnectRedis(ctx context.Context) *redis.Client {
	url := config.LoadRedisConfig().URL
	if url == "" {
		log.Println("REDIS_URL not set, analytics counters disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("Could not parse REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}
	return rdb
}
