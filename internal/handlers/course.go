package handlers

import (
	"errors"
	"net/http"
	"strconv"

	dom "Catalog/internal/domain"
	"Catalog/internal/dto"
	"Catalog/internal/logger"
	"Catalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgInvalidData = "Invalid data. Check the fields and try again."
	msgInvalidID   = "Invalid course id"
	msgNotFound    = "Course not found"
	msgInternal    = "Internal server error. Please try again later."
)

type CourseHandler struct {
	svc *service.CourseService
	log *logger.Logger
}

func NewCourseHandler(svc *service.CourseService, log *logger.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Register a course
// @Tags         courses
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      dto.CourseRequest  true  "Course"
// @Success      200   {object}  dto.CourseEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	input, ok := h.bindCourseInput(c)
	if !ok {
		return
	}
	res, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CourseEnvelope{
		Success: true,
		Message: res.Message,
		Course:  dto.NewCourseResponse(*res.Course),
	})
}

// List godoc
// @Summary      List all courses, newest first
// @Tags         courses
// @Produce      json
// @Success      200  {object}  dto.CourseListEnvelope
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CourseListEnvelope{
		Success: true,
		Message: res.Message,
		Courses: dto.NewCourseResponses(res.Courses),
	})
}

// GetByID godoc
// @Summary      Get a course by ID
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  dto.CourseEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CourseEnvelope{Success: true, Course: dto.NewCourseResponse(*res.Course)})
}

// Update godoc
// @Summary      Update a course
// @Tags         courses
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path      int                true  "Course ID"
// @Param        body  body      dto.CourseRequest  true  "Full replacement of the editable fields"
// @Success      200   {object}  dto.CourseEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.bindCourseInput(c)
	if !ok {
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CourseEnvelope{
		Success: true,
		Message: res.Message,
		Course:  dto.NewCourseResponse(*res.Course),
	})
}

// Deactivate godoc
// @Summary      Deactivate a course
// @Description  Soft delete: the course stays in the catalog with active=false.
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  dto.ResultEnvelope
// @Failure      400  {object}  dto.ResultEnvelope
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ResultEnvelope{Success: res.Success, Message: res.Message})
}

// Categories godoc
// @Summary      List course categories
// @Tags         courses
// @Produce      json
// @Success      200  {object}  dto.CategoriesEnvelope
// @Router       /api/categories [get]
func (h *CourseHandler) Categories(c *gin.Context) {
	cats := h.svc.Categories()
	out := make([]string, len(cats))
	for i, cat := range cats {
		out[i] = string(cat)
	}
	c.JSON(http.StatusOK, dto.CategoriesEnvelope{Success: true, Categories: out})
}

// bindCourseInput reads a JSON or URL-encoded body into an input mapping.
func (h *CourseHandler) bindCourseInput(c *gin.Context) (map[string]any, bool) {
	if c.ContentType() == binding.MIMEJSON {
		var req dto.CourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Debug("malformed course body", "error", err)
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: msgInvalidData})
			return nil, false
		}
		return req.Fields(), true
	}

	input := make(map[string]any, len(formKeys))
	for _, key := range formKeys {
		if v, ok := c.GetPostForm(key); ok {
			input[key] = v
		}
	}
	return input, true
}

var formKeys = []string{
	dom.FieldName,
	dom.FieldDescription,
	dom.FieldPrice,
	dom.FieldDurationHours,
	dom.FieldCategory,
	dom.FieldActive,
}

func (h *CourseHandler) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: msgInvalidData,
			Errors:  dto.NewFieldErrors(verr.Fields),
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: msgNotFound})
	default:
		// Already logged by the service with full detail.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: msgInternal})
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: msgInvalidID})
		return 0, false
	}
	return id, true
}
