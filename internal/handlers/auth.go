package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/renankaic/blogr/internal/middleware"
	"github.com/renankaic/blogr/internal/models"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Username": ""})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Invalid form data"})
		return
	}

	var errMsg string
	switch {
	case input.Username == "":
		errMsg = "Username is required."
	case input.Password == "":
		errMsg = "Password is required."
	}
	if errMsg == "" {
		var existing models.User
		if err := h.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			errMsg = fmt.Sprintf("User %s is already registered.", input.Username)
		}
	}
	if errMsg != "" {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    errMsg,
			"Username": input.Username,
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to hash password"})
		return
	}

	user := models.User{Username: input.Username, Password: string(hashedPassword)}
	if err := h.db.Create(&user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to create user"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Username": ""})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Invalid form data"})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Incorrect username.",
			"Username": input.Username,
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Incorrect password.",
			"Username": input.Username,
		})
		return
	}

	tokenString, err := middleware.IssueToken(user.ID, user.Username)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, tokenString, 72*3600, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
