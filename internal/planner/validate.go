package planner

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/studyplan/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks a raw submission and returns a StudyRequest ready for
// prompt building. Checks run in a fixed order and the first failure wins:
// credential, required fields, hours, deadline.
func Validate(in domain.PlanInput, today time.Time) (domain.StudyRequest, error) {
	return validateInput(in, today, true)
}

// ValidateStudy runs every check of Validate except the credential check.
func ValidateStudy(in domain.PlanInput, today time.Time) (domain.StudyRequest, error) {
	return validateInput(in, today, false)
}

func validateInput(in domain.PlanInput, today time.Time, requireKey bool) (domain.StudyRequest, error) {
	trimmed := domain.PlanInput{
		APIKey:   strings.TrimSpace(in.APIKey),
		Subject:  strings.TrimSpace(in.Subject),
		Hours:    strings.TrimSpace(in.Hours),
		Deadline: strings.TrimSpace(in.Deadline),
	}
	if err := checkRequired(trimmed, requireKey); err != nil {
		return domain.StudyRequest{}, err
	}

	hours, err := ParseHours(trimmed.Hours)
	if err != nil {
		return domain.StudyRequest{}, err
	}

	deadline, err := domain.ParseDate(trimmed.Deadline)
	if err != nil {
		return domain.StudyRequest{}, domain.NewValidationError(domain.ErrInvalidDeadline, "deadline",
			"enter the deadline as YYYY-MM-DD")
	}

	req := domain.NewStudyRequest(trimmed.Subject, hours, deadline, today)
	if err := validate.Struct(req); err != nil {
		return domain.StudyRequest{}, ruleViolation(err)
	}
	return req, nil
}

// ParseHours parses a positive, finite number of hours.
func ParseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return 0, domain.NewValidationError(domain.ErrInvalidHours, "hours",
			"enter a valid, positive number for total study hours")
	}
	return h, nil
}

// CheckHours adapts ParseHours for inline form validation.
func CheckHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := ParseHours(s)
	return err
}

// CheckDeadline accepts an empty value or a YYYY-MM-DD date no earlier than today.
func CheckDeadline(today time.Time) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		d, err := domain.ParseDate(s)
		if err != nil {
			return err
		}
		if domain.InclusiveDays(today, d) < 1 {
			return errors.New("the deadline must be today or later")
		}
		return nil
	}
}

// checkRequired reports the first empty field in declaration order, so a
// missing credential is reported before any missing form field.
func checkRequired(in domain.PlanInput, requireKey bool) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewGenericError(err)
	}
	for _, fe := range verrs {
		if fe.StructField() == "APIKey" {
			if !requireKey {
				continue
			}
			return domain.NewValidationError(domain.ErrMissingCredential, fe.Field(),
				"enter your OpenRouter API key")
		}
		return domain.NewValidationError(domain.ErrMissingField, fe.Field(),
			"please fill in all fields ("+fe.Field()+" is empty)")
	}
	return nil
}

func ruleViolation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewGenericError(err)
	}
	switch verrs[0].StructField() {
	case "TotalHours":
		return domain.NewValidationError(domain.ErrInvalidHours, "hours",
			"enter a valid, positive number for total study hours")
	case "Days":
		return domain.NewValidationError(domain.ErrInvalidDeadline, "deadline",
			"the deadline must be today or later")
	default:
		return domain.NewValidationError(domain.ErrMissingField, verrs[0].Field(), "please fill in all fields")
	}
}
