package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/renankaic/blogr/internal/repository"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
}

// NewHandler creates a unified handler with all sub-handlers sharing one
// repository.
func NewHandler(db *gorm.DB) *Handler {
	repo := repository.NewPostRepository(db)
	return &Handler{
		Auth:    NewAuthHandler(db),
		Post:    NewPostHandler(repo),
		Comment: NewCommentHandler(repo),
	}
}

func currentUserID(c *gin.Context) int {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	switch v := raw.(type) {
	case int:
		return v
	case uint:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	return c.GetString("username")
}

// postID parses the :id path segment. A non-numeric id renders the 404 page
// and reports false.
func postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Status":  http.StatusNotFound,
			"Message": "Post not found",
			"User":    currentUsername(c),
		})
		return 0, false
	}
	return id, true
}

// renderError maps repository errors onto the error page.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong"
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
		message = "Post not found"
	case errors.Is(err, repository.ErrForbidden):
		status = http.StatusForbidden
		message = "You can only modify your own posts"
	}
	c.HTML(status, "error.html", gin.H{
		"Status":  status,
		"Message": message,
		"User":    currentUsername(c),
	})
}
