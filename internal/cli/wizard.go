package cli

import (
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planner"
)

// studyplanHuhTheme returns a custom huh theme using the Gruvbox palette.
func studyplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planFields holds form-bound values for the plan form. Values survive a
// reset so the credential and previous answers can be edited and resubmitted.
type planFields struct {
	apiKey   string
	subject  string
	hours    string
	deadline string
}

func (f *planFields) input() domain.PlanInput {
	return domain.PlanInput{
		APIKey:   f.apiKey,
		Subject:  f.subject,
		Hours:    f.hours,
		Deadline: f.deadline,
	}
}

// newPlanForm builds the four-field submission form. Inline validation
// mirrors the planner's checks; the planner still validates on submit.
func newPlanForm(f *planFields, today time.Time) *huh.Form {
	f.deadline = domain.CoalesceStr(f.deadline, today.Format(domain.DateLayout))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenRouter API Key").
				Description("Held in memory for this session only.").
				EchoMode(huh.EchoModePassword).
				Value(&f.apiKey),
			huh.NewInput().
				Title("Subject").
				Placeholder("Biology").
				Value(&f.subject),
			huh.NewInput().
				Title("Total study hours").
				Placeholder("10").
				Value(&f.hours).
				Validate(planner.CheckHours),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Placeholder(today.AddDate(0, 0, 7).Format(domain.DateLayout)).
				Value(&f.deadline).
				Validate(planner.CheckDeadline(today)),
		),
	).WithTheme(studyplanHuhTheme()).WithShowHelp(false)
}
