package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// planFlags holds the request flags shared by plan and prompt.
type planFlags struct {
	subject  string
	hours    string
	deadline string
}

func (f planFlags) empty() bool {
	return f.subject == "" && f.hours == "" && f.deadline == ""
}

func addPlanFlags(cmd *cobra.Command, f *planFlags) {
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject to study, e.g. Biology")
	cmd.Flags().StringVar(&f.hours, "hours", "", "total study hours, a positive number")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "deadline date (YYYY-MM-DD), today or later")
}

func newPlanCmd(app *App) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a study plan",
		Long: "Generate a study plan. Without request flags on a terminal, an interactive\n" +
			"form is shown; otherwise --subject, --hours and --deadline are submitted once.",
		Example: `  studyplan plan --subject Biology --hours 10 --deadline 2026-03-12
  STUDYPLAN_API_KEY=sk-or-... studyplan plan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, flags)
		},
	}
	addPlanFlags(cmd, &flags)
	return cmd
}

func runPlan(cmd *cobra.Command, app *App, flags planFlags) error {
	in := domain.PlanInput{
		APIKey:   app.apiKey(),
		Subject:  flags.subject,
		Hours:    flags.hours,
		Deadline: flags.deadline,
	}

	if flags.empty() {
		if !app.isInteractive() {
			return fmt.Errorf("stdin is not a terminal; pass --subject, --hours and --deadline")
		}
		return runInteractive(cmd, app, in)
	}
	return runOneShot(cmd, app, in)
}

// runOneShot submits once and prints the outcome. Failures are rendered to
// stderr and reported as ErrPlanFailed.
func runOneShot(cmd *cobra.Command, app *App, in domain.PlanInput) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	width := terminalWidth(out)

	sub, err := app.Planner.Prepare(in)
	if err != nil {
		fmt.Fprintln(errOut, formatter.FormatPlanError(domain.AsPlanError(err), width))
		return ErrPlanFailed
	}
	fmt.Fprintln(out, formatter.FormatRequestSummary(sub.Request))

	stop := func() {}
	if app.isInteractive() {
		stop = formatter.StartSpinner(errOut, generating)
	}
	outcome := app.Planner.Complete(cmd.Context(), sub)
	stop()

	if outcome.Err != nil {
		fmt.Fprintln(errOut, formatter.FormatOutcome(outcome, width))
		return ErrPlanFailed
	}
	fmt.Fprintln(out, formatter.FormatOutcome(outcome, width))
	return nil
}

// runInteractive runs the form until the user quits, then leaves the last
// plan in the scrollback.
func runInteractive(cmd *cobra.Command, app *App, in domain.PlanInput) error {
	m := newPlanModel(cmd.Context(), app.Planner, app.now, in)
	p := tea.NewProgram(m,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running interactive form: %w", err)
	}

	if fm, ok := final.(*planModel); ok {
		if outcome, ok := fm.lastOutcome(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOutcome(outcome, terminalWidth(cmd.OutOrStdout())))
		}
	}
	return nil
}

// terminalWidth returns the usable box width for w, or 0 when w is not a
// terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return 0
	}
	if width > maxBoxWidth {
		return maxBoxWidth
	}
	return width
}
