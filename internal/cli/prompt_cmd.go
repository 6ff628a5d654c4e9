package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planner"
)

func newPromptCmd(app *App) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent, without calling the model",
		Example: `  studyplan prompt --subject Biology --hours 10 --deadline 2026-03-12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := planner.ValidateStudy(domain.PlanInput{
				Subject:  flags.subject,
				Hours:    flags.hours,
				Deadline: flags.deadline,
			}, app.now())
			width := terminalWidth(cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatPlanError(domain.AsPlanError(err), width))
				return ErrPlanFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPrompt(planner.SystemPrompt(), planner.BuildPrompt(req), width))
			return nil
		},
	}
	addPlanFlags(cmd, &flags)
	return cmd
}
