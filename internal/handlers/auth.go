package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/dto"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new user and returns an access token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, "User registered successfully", user)
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, "Login successful", user)
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respond(c, http.StatusOK, "User fetched successfully", dto.ToUserDTO(*user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, message string, user *models.User) {
	token, expiresAt, err := h.tokenService.Issue(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token", err)
		return
	}

	respond(c, status, message, dto.AuthResponse{
		User:      dto.ToUserDTO(*user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		apierrors.BadRequest(c, "A valid email address is required")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		apierrors.InternalError(c, "", err)
	}
}
