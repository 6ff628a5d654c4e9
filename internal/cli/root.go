package cli

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/logger"
	"github.com/alexanderramin/studyplan/internal/planner"
)

// ErrPlanFailed is returned after a failed submission has already been
// rendered to the user, so callers only need to set the exit status.
var ErrPlanFailed = errors.New("study plan not generated")

// App holds the dependencies shared by all commands. Nil fields are built
// from configuration before the first command runs.
type App struct {
	Viper   *viper.Viper
	Config  *config.Config
	Logger  *log.Logger
	Planner planner.Service

	// Now supplies "today"; defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	logCloser io.Closer
}

// configFlags maps config keys to the persistent and command flags that
// override them.
var configFlags = map[string]string{
	"api_key":    "api-key",
	"endpoint":   "endpoint",
	"model":      "model",
	"timeout":    "timeout",
	"log.level":  "log-level",
	"log.file":   "log-file",
	"log.debug":  "debug",
	"serve.addr": "addr",
}

// NewRootCmd creates the top-level "studyplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studyplan",
		Short: "AI study planner: a personalized schedule from subject, hours and deadline",
		Long: "Generate a personalized timetable for your studies.\n" +
			"Enter your subject, total study hours and your deadline; the plan is\n" +
			"written by a hosted language model through OpenRouter.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, planFlags{})
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-key", "", "OpenRouter API key (or STUDYPLAN_API_KEY); kept in memory only")
	pf.String("endpoint", llm.DefaultEndpoint, "chat-completions endpoint URL")
	pf.String("model", llm.DefaultModel, "model identifier")
	pf.Duration("timeout", 0, "request timeout, 0 for none")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to a rotating file instead of stderr")
	pf.Bool("debug", false, "verbose logging")

	root.AddCommand(
		newPlanCmd(app),
		newPromptCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	if a.Viper == nil {
		a.Viper = config.New()
	}
	if a.Config == nil {
		if err := config.BindFlags(a.Viper, cmd.Flags(), configFlags); err != nil {
			return err
		}
		cfg, err := config.Load(a.Viper)
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	if a.Logger == nil {
		l, closer, err := logger.New(a.Config.Logger(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.Logger, a.logCloser = l, closer
	}
	if a.Planner == nil {
		client := llm.NewOpenRouterClient(a.Config.LLM(), llm.NewLogObserver(a.Logger))
		a.Planner = planner.NewService(client, a.now, a.Logger)
	}
	a.Logger.Debug("configured", "endpoint", a.Config.Endpoint, "model", a.Config.Model, "timeout", a.Config.Timeout)
	return nil
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) isInteractive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) apiKey() string {
	if a.Config == nil {
		return ""
	}
	return a.Config.APIKey
}
