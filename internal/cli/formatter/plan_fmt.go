package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planner"
)

// PlanTitle heads every rendered study plan.
const PlanTitle = "Your Personalized Study Plan"

// SanitizeReply strips terminal escape sequences and control characters
// other than newlines and tabs, so a reply cannot restyle the terminal.
func SanitizeReply(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}

// FormatPlan renders a completion reply as a boxed study plan.
func FormatPlan(reply string, width int) string {
	return RenderBox(PlanTitle, StyleFg.Render(SanitizeReply(reply)), width)
}

// FormatRequestSummary renders a one-line summary of a validated request.
func FormatRequestSummary(req domain.StudyRequest) string {
	due := DeadlineStyle(req.Days).Render(fmt.Sprintf("%s (%s)",
		req.Deadline.Format("Jan 2, 2006"), RelativeDateFrom(req.Deadline, req.Today)))
	return fmt.Sprintf("%s %s %s %s %s %s",
		Bold(req.Subject),
		Dim("·"), StyleBlue.Render(planner.FormatHours(req.TotalHours)+"h"),
		Dim("·"), due,
		Dim(fmt.Sprintf("· %d %s", req.Days, plural(req.Days, "day", "days"))))
}

// FormatPlanError renders an ErrorState. Validation problems are warnings;
// endpoint failures are errors, and HTTP errors also show the raw body.
func FormatPlanError(err *domain.PlanError, width int) string {
	if err == nil {
		return ""
	}
	if err.IsValidation() {
		return StyleYellow.Render("⚠ " + err.Warning())
	}

	var b strings.Builder
	switch err.Kind {
	case domain.ErrHTTP:
		b.WriteString(StyleRed.Render("✖ HTTP error occurred: " + err.Message))
		body := strings.TrimSpace(err.Body)
		if body == "" {
			body = "(empty response body)"
		}
		b.WriteString("\n")
		b.WriteString(RenderBox("Response body", Dim(SanitizeReply(body)), width))
	default:
		b.WriteString(StyleRed.Render("✖ An error occurred: " + err.Message))
	}
	return b.String()
}

// FormatOutcome renders the terminal state of one submission.
func FormatOutcome(o planner.Outcome, width int) string {
	if o.Err != nil {
		return FormatPlanError(o.Err, width)
	}
	var b strings.Builder
	b.WriteString(FormatPlan(o.Reply, width))
	if o.Model != "" {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("  %s · %s", o.Model, o.Latency.Round(time.Millisecond))))
	}
	return b.String()
}

// FormatPrompt renders a built prompt for dry runs.
func FormatPrompt(system, prompt string, width int) string {
	var b strings.Builder
	b.WriteString(Header("System"))
	b.WriteString("\n")
	b.WriteString(Dim(system))
	b.WriteString("\n\n")
	b.WriteString(Header("User"))
	b.WriteString("\n")
	b.WriteString(prompt)
	return RenderBox("Prompt", b.String(), width)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
