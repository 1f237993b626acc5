package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/middleware"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
	"github.com/unifylabs/unify-backend/internal/validator"
)

// RegistrationHandler covers the optimizer and enrollment endpoints.
type RegistrationHandler struct {
	optimization *service.OptimizationService
	registration *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(
	optimization *service.OptimizationService,
	registration *service.RegistrationService,
) *RegistrationHandler {
	return &RegistrationHandler{
		optimization: optimization,
		registration: registration,
	}
}

// Optimize godoc
// POST /api/v1/student/schedule/optimize
// Runs the conflict-free section search for the requested courses.
// "No solution" and "timeout" are successful responses with a status
// field; only malformed input and infrastructure failures are errors.
func (h *RegistrationHandler) Optimize(c *gin.Context) {
	var req model.OptimizeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.optimization.Optimize(c.Request.Context(), req.CourseCodes, req.AcademicYear, req.Term)
	if err != nil {
		var missing *service.MissingCoursesError
		switch {
		case errors.Is(err, service.ErrNoCourses):
			response.Fail(c, http.StatusBadRequest, response.ErrNoCoursesRequested)
		case errors.As(err, &missing):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrCoursesNotOffered, missing.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":   result.Status,
		"schedule": result.Schedule,
	})
}

// Enroll godoc
// POST /api/v1/student/enrollments
// Persists a confirmed selection as active enrollments.
func (h *RegistrationHandler) Enroll(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.EnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollments, err := h.registration.Enroll(c.Request.Context(), claims.StudentID, claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSection):
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrUnknownSection, err.Error())
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.FailWithMessage(c, http.StatusConflict, response.ErrAlreadyEnrolled, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollments": enrollments})
}

// ListEnrollments godoc
// GET /api/v1/student/enrollments
func (h *RegistrationHandler) ListEnrollments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	enrollments, err := h.registration.ListEnrollments(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// DropEnrollment godoc
// DELETE /api/v1/student/enrollments/:id
func (h *RegistrationHandler) DropEnrollment(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.registration.DropEnrollment(c.Request.Context(), claims.StudentID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
