package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/renankaic/blogr/internal/database"
	"github.com/renankaic/blogr/internal/handlers"
	"github.com/renankaic/blogr/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	db := database.New()
	handler := handlers.NewHandler(db.GetDB())

	newServer := &Server{
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.LoadHTMLGlob("web/templates/*.html")

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Every request learns its viewer; handlers that need one sit behind
	// RequireLogin.
	r.Use(middleware.CurrentUser())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Public routes
	r.GET("/", s.handler.Post.List)
	r.GET("/register", s.handler.Auth.RegisterForm)
	r.POST("/register", s.handler.Auth.Register)
	r.GET("/login", s.handler.Auth.LoginForm)
	r.POST("/login", s.handler.Auth.Login)
	r.GET("/logout", s.handler.Auth.Logout)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.RequireLogin())
	{
		protected.GET("/create", s.handler.Post.CreateForm)
		protected.POST("/create", s.handler.Post.Create)
		protected.GET("/:id", s.handler.Post.View)
		protected.GET("/:id/update", s.handler.Post.UpdateForm)
		protected.POST("/:id/update", s.handler.Post.Update)
		protected.POST("/:id/delete", s.handler.Post.Delete)
		protected.GET("/:id/like", s.handler.Post.Like)
		protected.GET("/:id/dislike", s.handler.Post.Dislike)
		protected.POST("/:id/comments", s.handler.Comment.Create)
	}

	return r
}
