package main

import (
	"context"
	"log"

	api "tasknet-backend/cmd/api"
	authdomain "tasknet-backend/internal/auth/domain"
	authRepo "tasknet-backend/internal/auth/repository"
	authUsecase "tasknet-backend/internal/auth/usecase"
	taskdomain "tasknet-backend/internal/task/domain"
	taskRepo "tasknet-backend/internal/task/repository"
	taskUsecase "tasknet-backend/internal/task/usecase"
	"tasknet-backend/pkg/cache"
	"tasknet-backend/pkg/config"
	"tasknet-backend/pkg/database"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize storage (dependency injection). The memory driver keeps
	// everything in-process and needs no database.
	var userRepository authRepo.UserRepository
	var taskRepository taskRepo.TaskRepository

	if cfg.StoreDriver == "memory" {
		log.Printf("[WARN] memory store driver selected, data will not survive a restart")
		userRepository = authRepo.NewMemoryUserRepository()
		taskRepository = taskRepo.NewMemoryTaskRepository()
	} else {
		db, err := database.New(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		// Auto-migrate database schemas
		if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &taskdomain.Task{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		userRepository = authRepo.NewUserRepository(db)
		taskRepository = taskRepo.NewGormTaskRepository(db)
	}

	// Login codes and the stats cache use Redis when configured; otherwise
	// codes fall back to an in-process store and stats go uncached.
	var codeStore authRepo.LoginCodeStore = authRepo.NewMemoryLoginCodeStore()
	var statsCache taskUsecase.StatsCache
	var redisCache *cache.Cache

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		candidate := cache.New(client, "tasknet:", cfg.StatsCacheTTL)
		if err := candidate.Ping(context.Background()); err != nil {
			log.Printf("[WARN] Redis unavailable at %s, falling back to in-process stores: %v", cfg.RedisAddr, err)
		} else {
			codeStore = authRepo.NewRedisLoginCodeStore(client)
			redisCache = candidate
			statsCache = redisCache
			log.Printf("Redis connected at %s", cfg.RedisAddr)
		}
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, codeStore, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository)
	if statsCache != nil {
		taskUsecaseInstance.SetStatsCache(statsCache)
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, taskUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	err := handler.Start(":" + cfg.Port)
	if redisCache != nil {
		redisCache.Close()
	}
	if err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
