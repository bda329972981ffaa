package api

import (
	authUsecase "tasknet-backend/internal/auth/usecase"
	taskUsecase "tasknet-backend/internal/task/usecase"
	"tasknet-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	taskUsecase taskUsecase.TaskUsecase
	config      *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, taskUc taskUsecase.TaskUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		taskUsecase: taskUc,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	r.Use(corsMiddleware(h.config.AllowedOrigin))

	SetupRoutes(r, h.authUsecase, h.taskUsecase, h.config)

	return r.Run(addr)
}

func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowedOrigin != "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		case origin != "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		default:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
