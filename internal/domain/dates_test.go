package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInclusiveDays_SameDayIsOne(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays(day("2026-03-10"), day("2026-03-10")))
}

func TestInclusiveDays_WeekAheadIsSeven(t *testing.T) {
	today := day("2026-03-10")
	assert.Equal(t, 7, InclusiveDays(today, today.AddDate(0, 0, 6)))
}

func TestInclusiveDays_PastDeadlineIsNotPositive(t *testing.T) {
	today := day("2026-03-10")
	assert.Equal(t, 0, InclusiveDays(today, today.AddDate(0, 0, -1)))
	assert.Equal(t, -9, InclusiveDays(today, today.AddDate(0, 0, -10)))
}

func TestInclusiveDays_IgnoresTimeOfDayAndZone(t *testing.T) {
	tz := time.FixedZone("UTC+9", 9*3600)
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, tz)
	deadline := time.Date(2026, 3, 12, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, InclusiveDays(today, deadline))
}

func TestInclusiveDays_CrossesMonthAndLeapDay(t *testing.T) {
	assert.Equal(t, 3, InclusiveDays(day("2028-02-28"), day("2028-03-01")))
	assert.Equal(t, 365, InclusiveDays(day("2027-01-01"), day("2027-12-31")))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2026-11-02 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-02", got.Format(DateLayout))

	for _, bad := range []string{"", "02/11/2026", "2026-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "should reject %q", bad)
	}
}

func TestNewStudyRequest_ComputesDaysAndID(t *testing.T) {
	today := time.Date(2026, 10, 17, 15, 30, 0, 0, time.Local)
	req := NewStudyRequest("Biology", 10, day("2026-10-19"), today)

	assert.Equal(t, 3, req.Days)
	assert.Equal(t, "2026-10-17", req.TodayISO())
	assert.Equal(t, "2026-10-19", req.DeadlineISO())
	assert.NotEqual(t, NewStudyRequest("Biology", 10, day("2026-10-19"), today).ID, req.ID)
}

func TestInclusiveDays_BeyondDurationRange(t *testing.T) {
	today := day("2026-03-10")
	assert.Equal(t, 26960, InclusiveDays(today, day("2099-12-31")))
	assert.Equal(t, 136533, InclusiveDays(today, day("2400-01-01")))
	assert.Equal(t, -119136, InclusiveDays(today, day("1700-01-01")))
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "  ", "b", "c"))
	assert.Equal(t, " a ", CoalesceStr(" a ", "b"))
	assert.Empty(t, CoalesceStr("", " "))
}
