package dto

import (
	"time"

	dom "Catalog/internal/domain"
)

// CourseRequest is the body of POST /courses and PUT /api/courses/{id}.
// Numeric fields accept numbers or numeric strings; validation happens in the domain.
type CourseRequest struct {
	Name          string `json:"name" form:"name" example:"Go for Backend Developers"`
	Description   string `json:"description" form:"description" example:"Services, testing and tooling"`
	Price         any    `json:"price" form:"price" swaggertype:"number" example:"199.9"`
	DurationHours any    `json:"duration_hours" form:"duration_hours" swaggertype:"integer" example:"40"`
	Category      string `json:"category" form:"category" example:"Programming"`
	Active        any    `json:"active,omitempty" form:"active" swaggertype:"boolean" example:"true"`
}

// Fields converts the request into the input mapping the service consumes.
// An absent active flag is left out so the default applies.
func (r CourseRequest) Fields() map[string]any {
	in := map[string]any{
		dom.FieldName:          r.Name,
		dom.FieldDescription:   r.Description,
		dom.FieldPrice:         r.Price,
		dom.FieldDurationHours: r.DurationHours,
		dom.FieldCategory:      r.Category,
	}
	if r.Active != nil {
		in[dom.FieldActive] = r.Active
	}
	return in
}

type CourseResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	DurationHours int        `json:"duration_hours"`
	Category      string     `json:"category"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

func NewCourseResponse(c dom.Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Price:         dom.RoundPrice(c.Price),
		DurationHours: c.DurationHours,
		Category:      string(c.Category),
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func NewCourseResponses(list []dom.Course) []CourseResponse {
	out := make([]CourseResponse, len(list))
	for i := range list {
		out[i] = NewCourseResponse(list[i])
	}
	return out
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewFieldErrors(errs []dom.FieldError) []FieldError {
	out := make([]FieldError, len(errs))
	for i, e := range errs {
		out[i] = FieldError{Field: e.Field, Message: e.Message}
	}
	return out
}

// CourseEnvelope wraps a single course.
type CourseEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Course  CourseResponse `json:"course"`
}

type CourseListEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Courses []CourseResponse `json:"courses"`
}

type CategoriesEnvelope struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

// ResultEnvelope is returned by operations with no payload, like deactivation.
type ResultEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is every non-2xx body. Errors is set only for validation failures.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
