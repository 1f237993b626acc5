package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/middleware"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
	"github.com/unifylabs/unify-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	userRepo    *repository.UserRepository
	studentRepo *repository.StudentRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	userRepo *repository.UserRepository,
	studentRepo *repository.StudentRepository,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
		studentRepo: studentRepo,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns a JWT. A new login supersedes
// any previous session for the same account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(user.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	studentID := 0
	if user.Role == model.RoleStudent {
		student, err := h.studentRepo.GetByUserID(c.Request.Context(), user.ID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		studentID = student.ID
	}

	token, err := h.authService.GenerateToken(c.Request.Context(), user, studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{
		Token: token,
		User:  *user,
	})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	payload := gin.H{"user": user}
	if user.Role == model.RoleStudent {
		if student, err := h.studentRepo.GetByUserID(c.Request.Context(), user.ID); err == nil {
			payload["student"] = student
		}
	}

	response.Success(c, http.StatusOK, payload)
}

// Logout godoc
// POST /api/v1/auth/logout
// Invalidates the active session for the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
