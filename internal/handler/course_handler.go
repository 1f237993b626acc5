package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
	"github.com/unifylabs/unify-backend/internal/validator"
)

// CourseHandler covers staff-side course and timetable administration.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// GET /api/v1/staff/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// Create godoc
// POST /api/v1/staff/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := model.Course{
		Code:       req.Code,
		Name:       req.Name,
		Credits:    req.Credits,
		Instructor: req.Instructor,
	}
	if err := h.courses.Create(c.Request.Context(), &course); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update godoc
// PUT /api/v1/staff/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := model.Course{
		ID:         id,
		Name:       req.Name,
		Credits:    req.Credits,
		Instructor: req.Instructor,
	}
	if err := h.courses.Update(c.Request.Context(), &course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Delete godoc
// DELETE /api/v1/staff/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Slots godoc
// GET /api/v1/staff/timetable/:code?year=2026&term=FALL
func (h *CourseHandler) Slots(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	slots, err := h.courses.Slots(c.Request.Context(), c.Param("code"), year, c.Query("term"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// ReplaceSlots godoc
// PUT /api/v1/staff/timetable/:code
// Replaces the course's timetable for one term. One malformed row
// rejects the whole payload.
func (h *CourseHandler) ReplaceSlots(c *gin.Context) {
	var req model.ReplaceSlotsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.courses.ReplaceSlots(c.Request.Context(), c.Param("code"), req); err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
