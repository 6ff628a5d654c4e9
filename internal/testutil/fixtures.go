package testutil

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// Today is the fixed "today" used across tests.
var Today = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// DaysFromToday returns Today shifted by n days as YYYY-MM-DD.
func DaysFromToday(n int) string {
	return Today.AddDate(0, 0, n).Format(domain.DateLayout)
}

// Input options
type InputOption func(*domain.PlanInput)

func WithAPIKey(k string) InputOption {
	return func(in *domain.PlanInput) { in.APIKey = k }
}

func WithSubject(s string) InputOption {
	return func(in *domain.PlanInput) { in.Subject = s }
}

func WithHours(h string) InputOption {
	return func(in *domain.PlanInput) { in.Hours = h }
}

func WithDeadline(d string) InputOption {
	return func(in *domain.PlanInput) { in.Deadline = d }
}

// NewTestInput returns a valid submission (Biology, 10 hours, due in two
// days) with opts applied.
func NewTestInput(opts ...InputOption) domain.PlanInput {
	in := domain.PlanInput{
		APIKey:   "sk-or-test",
		Subject:  "Biology",
		Hours:    "10",
		Deadline: DaysFromToday(2),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
