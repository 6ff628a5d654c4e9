package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
)

const systemPrompt = "You are a professional academic assistant who generates study timetables."

// SystemPrompt returns the fixed system instruction sent with every request.
func SystemPrompt() string { return systemPrompt }

// FormatHours renders hours as parsed: 10 stays "10", 2.5 stays "2.5".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// BuildPrompt renders the user message for req. The subject is embedded
// verbatim. The output depends only on req's subject, hours, deadline and
// today, so identical inputs give identical prompts.
func BuildPrompt(req domain.StudyRequest) string {
	dayWord := "days"
	if req.Days == 1 {
		dayWord = "day"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a personalized study plan for the subject '%s'.\n", req.Subject)
	fmt.Fprintf(&b, "Today is %s and the deadline is %s, which gives %d %s including today.\n",
		req.TodayISO(), req.DeadlineISO(), req.Days, dayWord)
	fmt.Fprintf(&b, "The user wants to complete a total of %s hours between %s and %s.\n",
		FormatHours(req.TotalHours), req.TodayISO(), req.DeadlineISO())
	b.WriteString("Start with a brief overview of the subject and what to focus on.\n")
	b.WriteString("Distribute the hours effectively over the days and mention the daily time allocation for each date.\n")
	b.WriteString("Also add breaks if needed and suggest tips to stay consistent.")
	return b.String()
}
