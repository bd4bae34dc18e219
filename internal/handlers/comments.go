package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renankaic/blogr/internal/repository"
)

type CommentHandler struct {
	repo *repository.PostRepository
}

func NewCommentHandler(repo *repository.PostRepository) *CommentHandler {
	return &CommentHandler{repo: repo}
}

// Create appends a comment to a post. Empty text is rejected with a 400
// before anything is written.
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetPost(id, currentUserID(c), false, false); err != nil {
		renderError(c, err)
		return
	}

	body := c.PostForm("body")
	if err := h.repo.AddComment(id, currentUserID(c), body); err != nil {
		if errors.Is(err, repository.ErrEmptyComment) {
			c.String(http.StatusBadRequest, "Comment text is required.")
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%d", id))
}
