package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/renankaic/blogr/internal/models"
	"github.com/renankaic/blogr/internal/repository"
	"github.com/renankaic/blogr/internal/tags"
)

type PostHandler struct {
	repo *repository.PostRepository
}

func NewPostHandler(repo *repository.PostRepository) *PostHandler {
	return &PostHandler{repo: repo}
}

// List shows every post, newest first. No login required.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.repo.ListPosts()
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts":  posts,
		"User":   currentUsername(c),
		"UserID": currentUserID(c),
	})
}

func (h *PostHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", gin.H{
		"User":  currentUsername(c),
		"Title": "",
		"Body":  "",
		"Tags":  "",
	})
}

// Create validates the form and inserts the post. Validation failures
// re-render the form with the message and the submitted values; nothing is
// written in that case.
func (h *PostHandler) Create(c *gin.Context) {
	var input models.CreatePostRequest
	_ = c.ShouldBind(&input)

	tagList := tags.Normalize(input.Tags)
	if errMsg := validatePost(input.Title, tagList); errMsg != "" {
		c.HTML(http.StatusOK, "create.html", gin.H{
			"Error": errMsg,
			"Title": input.Title,
			"Body":  input.Body,
			"Tags":  input.Tags,
			"User":  currentUsername(c),
		})
		return
	}

	id, err := h.repo.CreatePost(input.Title, input.Body, currentUserID(c), tagList)
	if err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%d", id))
}

// View shows one post with its comments. Any logged-in user may view any
// post.
func (h *PostHandler) View(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.repo.GetPost(id, currentUserID(c), false, true)
	if err != nil {
		renderError(c, err)
		return
	}
	comments, err := h.repo.ListComments(id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "details.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"User":     currentUsername(c),
		"UserID":   currentUserID(c),
	})
}

func (h *PostHandler) UpdateForm(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.repo.GetPost(id, currentUserID(c), true, true)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "update.html", gin.H{
		"Post":  post,
		"Title": post.Title,
		"Body":  post.Body,
		"Tags":  strings.Join(post.Tags, ", "),
		"User":  currentUsername(c),
	})
}

// Update overwrites title, body and tags. Only the author may update.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.repo.GetPost(id, currentUserID(c), true, false)
	if err != nil {
		renderError(c, err)
		return
	}

	var input models.CreatePostRequest
	_ = c.ShouldBind(&input)

	tagList := tags.Normalize(input.Tags)
	if errMsg := validatePost(input.Title, tagList); errMsg != "" {
		c.HTML(http.StatusOK, "update.html", gin.H{
			"Error": errMsg,
			"Post":  post,
			"Title": input.Title,
			"Body":  input.Body,
			"Tags":  input.Tags,
			"User":  currentUsername(c),
		})
		return
	}

	if err := h.repo.UpdatePost(id, input.Title, input.Body, tagList); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a post. Only the author may delete.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetPost(id, currentUserID(c), true, false); err != nil {
		renderError(c, err)
		return
	}
	if err := h.repo.DeletePost(id); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Like records the viewer's like. Liking twice is a no-op.
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetPost(id, currentUserID(c), false, false); err != nil {
		renderError(c, err)
		return
	}
	if err := h.repo.AddLike(id, currentUserID(c)); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%d", id))
}

// Dislike withdraws the viewer's like. Removing an absent like is a no-op.
func (h *PostHandler) Dislike(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetPost(id, currentUserID(c), false, false); err != nil {
		renderError(c, err)
		return
	}
	if err := h.repo.RemoveLike(id, currentUserID(c)); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/%d", id))
}

func validatePost(title string, tagList []string) string {
	if title == "" {
		return "Title is required."
	}
	if len(tagList) == 0 {
		return "Enter at least one tag."
	}
	return ""
}
