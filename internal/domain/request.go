package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for deadlines and prompts.
const DateLayout = "2006-01-02"

// PlanInput holds the raw, unvalidated values of one form submission.
type PlanInput struct {
	APIKey   string `form:"api_key" validate:"required"`
	Subject  string `form:"subject" validate:"required"`
	Hours    string `form:"hours" validate:"required"`
	Deadline string `form:"deadline" validate:"required"`
}

// StudyRequest is a validated plan request. It is created fresh for each
// submission and discarded once the completion round trip finishes.
type StudyRequest struct {
	ID         uuid.UUID
	Subject    string  `validate:"required"`
	TotalHours float64 `validate:"gt=0"`
	Deadline   time.Time
	Today      time.Time
	Days       int `validate:"gte=1"`
}

// NewStudyRequest assigns a fresh request ID and computes the inclusive day
// span between today and the deadline.
func NewStudyRequest(subject string, hours float64, deadline, today time.Time) StudyRequest {
	return StudyRequest{
		ID:         uuid.New(),
		Subject:    subject,
		TotalHours: hours,
		Deadline:   CivilDate(deadline),
		Today:      CivilDate(today),
		Days:       InclusiveDays(today, deadline),
	}
}

// DeadlineISO returns the deadline as YYYY-MM-DD.
func (r StudyRequest) DeadlineISO() string {
	return r.Deadline.Format(DateLayout)
}

// TodayISO returns the submission date as YYYY-MM-DD.
func (r StudyRequest) TodayISO() string {
	return r.Today.Format(DateLayout)
}
