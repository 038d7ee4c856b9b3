package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Keys of a course input mapping. Field errors use the same names.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldDurationHours = "duration_hours"
	FieldCategory      = "category"
	FieldActive        = "active"
)

// Course is the catalog record.
// ID is zero until the repository assigns one; UpdatedAt stays nil until the first modification.
type Course struct {
	ID            int64
	Name          string
	Description   string
	Price         float64
	DurationHours int
	Category      Category
	Active        bool

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Fields returns the plain storage mapping of c: price rounded to two decimals,
// active as a 0/1 flag.
func (c Course) Fields() map[string]any {
	active := 0
	if c.Active {
		active = 1
	}
	return map[string]any{
		FieldID:            c.ID,
		FieldName:          c.Name,
		FieldDescription:   c.Description,
		FieldPrice:         RoundPrice(c.Price),
		FieldDurationHours: c.DurationHours,
		FieldCategory:      string(c.Category),
		FieldActive:        active,
	}
}

// FieldError is a single user-correctable problem with one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// Draft is a course as received from a client, before validation.
// Numeric fields are kept as text so malformed values surface as field errors.
type Draft struct {
	Name          string
	Description   string
	Price         string
	DurationHours string
	Category      string
	Active        bool
}

// NewDraft builds a draft from an arbitrary input mapping. Missing keys become
// empty strings; a missing active flag means true.
func NewDraft(input map[string]any) Draft {
	d := Draft{
		Name:          text(input[FieldName]),
		Description:   text(input[FieldDescription]),
		Price:         text(input[FieldPrice]),
		DurationHours: text(input[FieldDurationHours]),
		Category:      text(input[FieldCategory]),
		Active:        true,
	}
	if v, ok := input[FieldActive]; ok && v != nil {
		d.Active = truthy(v)
	}
	return d
}

// Sanitized returns a copy of d with normalized text fields.
func (d Draft) Sanitized() Draft {
	d.Name = SanitizeText(d.Name)
	d.Description = SanitizeText(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	return d
}

// Course coerces d into its canonical stored form. d must have passed Validate;
// otherwise the returned error is a FieldError naming the field that failed.
func (d Draft) Course() (Course, error) {
	price, ok := parsePrice(d.Price)
	if !ok {
		return Course{}, FieldError{Field: FieldPrice, Message: "price must be a number"}
	}
	hours, err := parseHours(d.DurationHours)
	if err != nil {
		return Course{}, FieldError{Field: FieldDurationHours, Message: "duration_hours must be a whole number of hours"}
	}
	return Course{
		Name:          d.Name,
		Description:   d.Description,
		Price:         RoundPrice(price),
		DurationHours: hours,
		Category:      Category(strings.TrimSpace(d.Category)),
		Active:        d.Active,
	}, nil
}

// RoundPrice rounds p to cents.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

func parsePrice(raw string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

func parseHours(raw string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "on", "yes":
			return true
		}
		return false
	case json.Number:
		return t.String() != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return false
	}
}
