package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() map[string]any {
	return map[string]any{
		FieldName:          "Intro to Testing",
		FieldDescription:   "Unit and integration tests",
		FieldPrice:         99.90,
		FieldDurationHours: 10,
		FieldCategory:      "Other",
	}
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft(map[string]any{})
	assert.Equal(t, Draft{Active: true}, d)

	d = NewDraft(map[string]any{FieldActive: nil})
	assert.True(t, d.Active)

	d = NewDraft(map[string]any{FieldActive: "false"})
	assert.False(t, d.Active)

	d = NewDraft(map[string]any{FieldActive: 0})
	assert.False(t, d.Active)
}

func TestValidateAcceptsValidInput(t *testing.T) {
	cases := []map[string]any{
		validInput(),
		{FieldName: "abc", FieldPrice: 0, FieldDurationHours: 1, FieldCategory: "Programming"},
		{FieldName: strings.Repeat("x", 120), FieldPrice: "12.5", FieldDurationHours: "40", FieldCategory: "UX/UI"},
		{FieldName: "Networks 101", FieldPrice: "0.00", FieldDurationHours: 2, FieldCategory: "Networking"},
		{FieldName: "SQL", FieldPrice: 1000, FieldDurationHours: 8, FieldCategory: "Database"},
	}
	for _, in := range cases {
		assert.Empty(t, NewDraft(in).Validate(), "input %v", in)
	}
}

func TestValidateReportsSingleViolation(t *testing.T) {
	cases := map[string]struct {
		key   string
		value any
		field string
	}{
		"short name":        {FieldName, "ab", FieldName},
		"long name":         {FieldName, strings.Repeat("y", 121), FieldName},
		"blank name":        {FieldName, "   ", FieldName},
		"negative price":    {FieldPrice, -0.01, FieldPrice},
		"malformed price":   {FieldPrice, "ten", FieldPrice},
		"missing price":     {FieldPrice, nil, FieldPrice},
		"zero duration":     {FieldDurationHours, 0, FieldDurationHours},
		"fraction duration": {FieldDurationHours, 1.5, FieldDurationHours},
		"malformed hours":   {FieldDurationHours, "abc", FieldDurationHours},
		"unknown category":  {FieldCategory, "Cooking", FieldCategory},
		"empty category":    {FieldCategory, "", FieldCategory},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			in[tc.key] = tc.value
			errs := NewDraft(in).Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tc.field, errs[0].Field)
			assert.NotEmpty(t, errs[0].Message)
		})
	}
}

func TestValidateReportsAllViolationsInOrder(t *testing.T) {
	errs := NewDraft(map[string]any{
		FieldName:          "x",
		FieldPrice:         "-3",
		FieldDurationHours: "0",
		FieldCategory:      "Nope",
	}).Validate()

	assert.Equal(t, []string{FieldName, FieldPrice, FieldDurationHours, FieldCategory}, fieldsOf(errs))
}

func TestValidateMeasuresSanitizedName(t *testing.T) {
	errs := NewDraft(map[string]any{
		FieldName:          "  <a>  ",
		FieldPrice:         1,
		FieldDurationHours: 1,
		FieldCategory:      "Other",
	}).Validate()
	assert.Equal(t, []string{FieldName}, fieldsOf(errs))
}

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		"  Go   for\tbeginners \n": "Go for beginners",
		"<script>alert(1)</script>": "scriptalert(1)/script",
		"a < b":                     "a b",
		"":                          "",
		"plain":                     "plain",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeText(in), "input %q", in)
	}
}

func TestSanitizeTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"  Go   for\tbeginners \n",
		"a < b > c",
		"<<>>",
		" x <\n> y ",
		"Dados e  redes",
	}
	for _, in := range inputs {
		once := SanitizeText(in)
		assert.Equal(t, once, SanitizeText(once), "input %q", in)
	}
}

func TestDraftCourseCoercesNumbers(t *testing.T) {
	d := NewDraft(map[string]any{
		FieldName:          "Intro to Testing",
		FieldPrice:         "99.899",
		FieldDurationHours: " 10 ",
		FieldCategory:      " Other ",
		FieldActive:        true,
	}).Sanitized()
	require.Empty(t, d.Validate())

	c, err := d.Course()
	require.NoError(t, err)
	assert.Equal(t, 99.90, c.Price)
	assert.Equal(t, 10, c.DurationHours)
	assert.Equal(t, CategoryOther, c.Category)
	assert.True(t, c.Active)
	assert.Zero(t, c.ID)
}

func TestDraftCourseRejectsMalformedNumbers(t *testing.T) {
	_, err := NewDraft(map[string]any{FieldPrice: "abc", FieldDurationHours: 1}).Course()
	var fe FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldPrice, fe.Field)

	_, err = NewDraft(map[string]any{FieldPrice: 1, FieldDurationHours: "x"}).Course()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldDurationHours, fe.Field)
}

func TestFieldsRoundTrip(t *testing.T) {
	orig, err := NewDraft(validInput()).Sanitized().Course()
	require.NoError(t, err)

	fields := orig.Fields()
	assert.Equal(t, 1, fields[FieldActive])
	assert.Equal(t, 99.9, fields[FieldPrice])

	again, err := NewDraft(fields).Course()
	require.NoError(t, err)
	assert.Equal(t, orig, again)

	orig.Active = false
	again, err = NewDraft(orig.Fields()).Course()
	require.NoError(t, err)
	assert.False(t, again.Active)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Equal(t, []Category{"Programming", "Database", "Networking", "UX/UI", "Other"}, cats)
	for _, c := range cats {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("Cooking").Valid())

	cats[0] = "mutated"
	assert.Equal(t, CategoryProgramming, Categories()[0])
}
