package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/testutil"
)

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.PlanError {
	t.Helper()
	require.Error(t, err)
	pe := domain.AsPlanError(err)
	require.Equal(t, kind, pe.Kind, "got %v", err)
	return pe
}

func TestValidate_Valid(t *testing.T) {
	req, err := Validate(testutil.NewTestInput(), testutil.Today)
	require.NoError(t, err)

	assert.Equal(t, "Biology", req.Subject)
	assert.Equal(t, 10.0, req.TotalHours)
	assert.Equal(t, testutil.DaysFromToday(2), req.DeadlineISO())
	assert.Equal(t, 3, req.Days)
}

func TestValidate_MissingCredentialComesFirst(t *testing.T) {
	in := domain.PlanInput{APIKey: "  "}
	_, err := Validate(in, testutil.Today)
	pe := requireKind(t, err, domain.ErrMissingCredential)
	assert.Equal(t, "api_key", pe.Field)
}

func TestValidate_MissingFields(t *testing.T) {
	cases := []struct {
		field string
		opt   testutil.InputOption
	}{
		{"subject", testutil.WithSubject("")},
		{"subject", testutil.WithSubject("   ")},
		{"hours", testutil.WithHours("")},
		{"deadline", testutil.WithDeadline("")},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			_, err := Validate(testutil.NewTestInput(tc.opt), testutil.Today)
			pe := requireKind(t, err, domain.ErrMissingField)
			assert.Equal(t, tc.field, pe.Field)
			assert.True(t, pe.IsValidation())
		})
	}
}

func TestValidate_MissingFieldsReportedInFormOrder(t *testing.T) {
	in := testutil.NewTestInput(testutil.WithHours(""), testutil.WithDeadline(""))
	_, err := Validate(in, testutil.Today)
	pe := requireKind(t, err, domain.ErrMissingField)
	assert.Equal(t, "hours", pe.Field)
}

func TestValidate_InvalidHours(t *testing.T) {
	for _, hours := range []string{"abc", "0", "-3", "0.0", "NaN", "inf", "+Inf", "10h", "1,5"} {
		t.Run(hours, func(t *testing.T) {
			_, err := Validate(testutil.NewTestInput(testutil.WithHours(hours)), testutil.Today)
			requireKind(t, err, domain.ErrInvalidHours)
		})
	}
}

func TestValidate_AcceptsUnboundedHours(t *testing.T) {
	for _, hours := range []string{" 2.5 ", "1e3", "100000", "0.01"} {
		_, err := Validate(testutil.NewTestInput(testutil.WithHours(hours)), testutil.Today)
		assert.NoError(t, err, "should accept %q", hours)
	}
}

func TestValidate_InvalidDeadline(t *testing.T) {
	cases := map[string]string{
		"bad format": "10/03/2026",
		"yesterday":  testutil.DaysFromToday(-1),
		"long ago":   "1999-01-01",
	}
	for name, deadline := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(testutil.NewTestInput(testutil.WithDeadline(deadline)), testutil.Today)
			requireKind(t, err, domain.ErrInvalidDeadline)
		})
	}
}

func TestValidate_DeadlineTodayIsOneDay(t *testing.T) {
	req, err := Validate(testutil.NewTestInput(testutil.WithDeadline(testutil.DaysFromToday(0))), testutil.Today)
	require.NoError(t, err)
	assert.Equal(t, 1, req.Days)

	req, err = Validate(testutil.NewTestInput(testutil.WithDeadline(testutil.DaysFromToday(6))), testutil.Today)
	require.NoError(t, err)
	assert.Equal(t, 7, req.Days)
}

func TestValidate_FarFutureDeadlineAccepted(t *testing.T) {
	req, err := Validate(testutil.NewTestInput(testutil.WithDeadline("2099-12-31")), testutil.Today)
	require.NoError(t, err)
	assert.Equal(t, 26960, req.Days)

	req, err = Validate(testutil.NewTestInput(testutil.WithDeadline("2400-01-01")), testutil.Today)
	require.NoError(t, err)
	assert.Equal(t, 136533, req.Days)
	assert.Contains(t, BuildPrompt(req), "which gives 136533 days including today")
}

func TestValidateStudy_SkipsCredential(t *testing.T) {
	in := testutil.NewTestInput(testutil.WithAPIKey(""))
	_, err := ValidateStudy(in, testutil.Today)
	require.NoError(t, err)

	_, err = ValidateStudy(testutil.NewTestInput(testutil.WithAPIKey(""), testutil.WithSubject("")), testutil.Today)
	requireKind(t, err, domain.ErrMissingField)
}

func TestCheckHoursAndDeadline(t *testing.T) {
	assert.NoError(t, CheckHours(""))
	assert.NoError(t, CheckHours("12"))
	assert.Error(t, CheckHours("-1"))

	check := CheckDeadline(testutil.Today)
	assert.NoError(t, check(""))
	assert.NoError(t, check(testutil.DaysFromToday(0)))
	assert.Error(t, check(testutil.DaysFromToday(-1)))
	assert.Error(t, check("soon"))
}
