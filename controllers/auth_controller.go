package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/middleware"
	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/kendall-kelly/order-tracking-api/services"
)

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Username string      `json:"username" form:"username"`
	Password string      `json:"password" form:"password"`
	Role     models.Role `json:"role" form:"role"`
}

// LoginRequest is accepted as JSON or as an HTML form post
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthController serves the /auth endpoints
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates the /auth handlers
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register - creates a new user
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// Login handles POST /auth/login - exchanges credentials for a bearer token
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	token, err := ac.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// Me handles GET /auth/me - returns the authenticated user
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// VerifyToken handles GET /auth/verify-token
func (ac *AuthController) VerifyToken(c *gin.Context) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"username": user.Username,
		"role":     user.Role,
	})
}

// AdminOnly handles GET /auth/admin-only; mounted behind AdminRequired
func (ac *AuthController) AdminOnly(c *gin.Context) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Welcome admin!",
		"admin_username": user.Username,
	})
}
