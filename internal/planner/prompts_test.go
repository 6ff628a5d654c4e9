package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplan/internal/testutil"
)

func TestBuildPrompt_ContainsSubjectHoursAndDates(t *testing.T) {
	req, err := Validate(testutil.NewTestInput(), testutil.Today)
	require.NoError(t, err)

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "Biology")
	assert.Contains(t, prompt, "10 hours")
	assert.Contains(t, prompt, testutil.DaysFromToday(2))
	assert.Contains(t, prompt, testutil.DaysFromToday(0))
	assert.Contains(t, prompt, "3 days including today")
}

func TestBuildPrompt_CoversAllInstructions(t *testing.T) {
	req, err := Validate(testutil.NewTestInput(), testutil.Today)
	require.NoError(t, err)
	prompt := strings.ToLower(BuildPrompt(req))

	assert.Contains(t, prompt, "overview of the subject")
	assert.Contains(t, prompt, "daily time allocation")
	assert.Contains(t, prompt, "breaks")
	assert.Contains(t, prompt, "stay consistent")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a, err := Validate(testutil.NewTestInput(), testutil.Today)
	require.NoError(t, err)
	b, err := Validate(testutil.NewTestInput(), testutil.Today)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, BuildPrompt(a), BuildPrompt(b))
}

func TestBuildPrompt_SingleDayWording(t *testing.T) {
	req, err := Validate(testutil.NewTestInput(testutil.WithDeadline(testutil.DaysFromToday(0))), testutil.Today)
	require.NoError(t, err)
	assert.Contains(t, BuildPrompt(req), "1 day including today")
}

func TestBuildPrompt_SubjectPassedVerbatim(t *testing.T) {
	subject := `Organic "Chem" <b>II</b> & {labs}`
	req, err := Validate(testutil.NewTestInput(testutil.WithSubject(subject)), testutil.Today)
	require.NoError(t, err)
	assert.Contains(t, BuildPrompt(req), "'"+subject+"'")
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "10", FormatHours(10))
	assert.Equal(t, "2.5", FormatHours(2.5))
	assert.Equal(t, "1000", FormatHours(1e3))
}
