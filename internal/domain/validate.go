package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	nameMinRule     = "min=3"
	nameMaxRule     = "max=120"
	priceMinRule    = "gte=0"
	priceMaxRule    = "lte=99999999.99" // NUMERIC(10,2)
	durationMinRule = "gte=1"
	categoryRule    = "category"
)

var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(categoryRule, func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks every field independently and returns all problems in
// name, price, duration, category order. An empty result means d is valid.
// The name is measured in its sanitized form.
func (d Draft) Validate() []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	name := SanitizeText(d.Name)
	switch {
	case name == "":
		add(FieldName, "name is required")
	case rules.Var(name, nameMinRule) != nil:
		add(FieldName, "name must be at least 3 characters")
	case rules.Var(name, nameMaxRule) != nil:
		add(FieldName, "name must be at most 120 characters")
	}

	if strings.TrimSpace(d.Price) == "" {
		add(FieldPrice, "price is required")
	} else if price, ok := parsePrice(d.Price); !ok {
		add(FieldPrice, "price must be a number")
	} else if rules.Var(price, priceMinRule) != nil {
		add(FieldPrice, "price must be greater than or equal to 0")
	} else if rules.Var(price, priceMaxRule) != nil {
		add(FieldPrice, "price is too large")
	}

	if strings.TrimSpace(d.DurationHours) == "" {
		add(FieldDurationHours, "duration_hours is required")
	} else if hours, err := parseHours(d.DurationHours); err != nil {
		add(FieldDurationHours, "duration_hours must be a whole number of hours")
	} else if rules.Var(hours, durationMinRule) != nil {
		add(FieldDurationHours, "duration_hours must be at least 1 hour")
	}

	category := strings.TrimSpace(d.Category)
	switch {
	case category == "":
		add(FieldCategory, "category is required")
	case rules.Var(category, categoryRule) != nil:
		add(FieldCategory, "category must be one of: "+categoryList())
	}

	return errs
}

func categoryList() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
