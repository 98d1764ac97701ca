package handlers

import (
	"net/http"

	"foodees-api/access"
	"foodees-api/middleware"
	"foodees-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Phone    string          `json:"phone" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account and logs it in
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	user, err := h.svc.Register(c.Request.Context(), access.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.issueToken(c, http.StatusCreated, "Account created successfully", user)
}

// Login authenticates a phone/password pair and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	user, err := h.svc.Authenticate(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.issueToken(c, http.StatusOK, "Login successful", user)
}

// Logout drops the session's cart. The token itself simply expires.
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.carts.Delete(c.Request.Context(), sess.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	user, err := h.svc.Profile(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "session_id": sess.ID})
}

func (h *Handler) issueToken(c *gin.Context, status int, message string, user *models.User) {
	token, sess, err := middleware.GenerateToken(user, h.secret, h.tokenTTL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("session started")
	c.JSON(status, gin.H{
		"message":    message,
		"token":      token,
		"session_id": sess.ID,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}
