package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vitamed/backend/internal/config"
	"github.com/vitamed/backend/internal/httpapi/handlers"
	"github.com/vitamed/backend/internal/httpapi/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	// all origins, methods and headers permitted
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Sayfa bulunamadı"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Yöntem desteklenmiyor"})
	})

	api := r.Group("/api")

	api.GET("/", h.Root)
	api.GET("/health", h.Health)

	api.POST("/auth/send-code", h.SendCode)
	api.POST("/auth/verify-code", h.VerifyCode)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authGroup := api.Group("/")
	authGroup.Use(middleware.TokenAuth(cfg.JWTSecret))
	authGroup.GET("/auth/me", h.Me)

	authGroup.POST("/documents", h.CreateDocument)
	authGroup.GET("/documents", h.ListDocuments)
	authGroup.GET("/documents/:id", h.GetDocument)
	authGroup.DELETE("/documents/:id", h.DeleteDocument)

	authGroup.POST("/chat", h.Chat)
	authGroup.GET("/chat/history", h.ChatHistory)

	return r
}
