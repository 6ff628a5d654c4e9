package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the study planner as a web form",
		Long: "Serve the submission form over HTTP. The API key is entered per request\n" +
			"and never stored on the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := web.NewHandler(app.Planner, app.Logger, web.WithClock(app.now))
			return web.ListenAndServe(cmd.Context(), app.Config.Serve.Addr, handler, app.Logger)
		},
	}
	cmd.Flags().String("addr", config.DefaultServeAddr, "listen address (host:port)")
	return cmd
}
