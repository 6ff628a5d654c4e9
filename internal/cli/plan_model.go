package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planner"
)

const (
	appTitle    = "AI Study Planner"
	appSubtitle = "Generate a personalized timetable from your subject, hours and deadline."
	generating  = "Generating your personalized study plan..."
	maxBoxWidth = 100
)

// submitMsg carries a completed form into the pipeline.
type submitMsg struct {
	input domain.PlanInput
}

// completionMsg carries the outcome of the single completion call.
type completionMsg struct {
	outcome planner.Outcome
}

// planModel is the interactive session. It owns the form, the submission
// state machine, and the last rendered outcome.
type planModel struct {
	ctx     context.Context
	svc     planner.Service
	now     func() time.Time
	today   time.Time
	fields  planFields
	form    *huh.Form
	spinner spinner.Model

	state   domain.State
	history []domain.State
	request *domain.StudyRequest
	warning *domain.PlanError
	outcome *planner.Outcome

	width    int
	quitting bool
}

// newPlanModel builds the session model. now is read each time the form is
// built, so a session left open past midnight validates against the new day.
func newPlanModel(ctx context.Context, svc planner.Service, now func() time.Time, initial domain.PlanInput) *planModel {
	if now == nil {
		now = time.Now
	}
	m := &planModel{
		ctx:   ctx,
		svc:   svc,
		now:   now,
		fields: planFields{
			apiKey:   initial.APIKey,
			subject:  initial.Subject,
			hours:    initial.Hours,
			deadline: initial.Deadline,
		},
		spinner: spinner.New(
			spinner.WithSpinner(formatter.SpinnerStyle),
			spinner.WithStyle(formatter.StylePurple),
		),
		state: domain.StateIdle,
	}
	m.buildForm()
	return m
}

func (m *planModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch {
		case m.state.Terminal():
			switch msg.String() {
			case "r", "enter":
				return m, m.reset()
			case "q", "esc":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case m.state == domain.StateAwaitingCompletion:
			return m, nil
		}

	case submitMsg:
		return m, m.submit(msg.input)

	case completionMsg:
		if m.state != domain.StateAwaitingCompletion {
			return m, nil
		}
		m.outcome = &msg.outcome
		m.transition(msg.outcome.State)
		return m, nil

	case spinner.TickMsg:
		if m.state != domain.StateAwaitingCompletion {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == domain.StateIdle {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *planModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		in := m.fields.input()
		return m, func() tea.Msg { return submitMsg{input: in} }
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// submit validates the input and starts the completion call. Validation
// failures pass through Failed and straight back to Idle with the warning
// shown above the form.
func (m *planModel) submit(in domain.PlanInput) tea.Cmd {
	if m.state != domain.StateIdle {
		return nil
	}
	m.transition(domain.StateValidating)
	m.warning = nil
	m.outcome = nil
	m.request = nil

	sub, err := m.svc.Prepare(in)
	if err != nil {
		pe := domain.AsPlanError(err)
		m.transition(domain.StateFailed)
		m.warning = pe
		return m.reset()
	}

	m.request = &sub.Request
	m.transition(domain.StateAwaitingCompletion)

	ctx, svc := m.ctx, m.svc
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return completionMsg{outcome: svc.Complete(ctx, sub)} },
	)
}

// reset rebuilds the form from the retained field values.
func (m *planModel) reset() tea.Cmd {
	m.transition(domain.StateIdle)
	m.buildForm()
	return m.form.Init()
}

func (m *planModel) buildForm() {
	// An untouched default deadline follows the clock.
	if !m.today.IsZero() && m.fields.deadline == m.today.Format(domain.DateLayout) {
		m.fields.deadline = ""
	}
	m.today = m.now()
	m.form = newPlanForm(&m.fields, m.today)
}

func (m *planModel) transition(next domain.State) {
	if !m.state.CanTransition(next) {
		return
	}
	m.state = next
	m.history = append(m.history, next)
}

func (m *planModel) boxWidth() int {
	if m.width <= 0 || m.width > maxBoxWidth {
		return maxBoxWidth
	}
	return m.width
}

func (m *planModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header(appTitle))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(appSubtitle))
	b.WriteString("\n\n")

	switch m.state {
	case domain.StateIdle, domain.StateValidating:
		if m.warning != nil {
			b.WriteString(formatter.FormatPlanError(m.warning, m.boxWidth()))
			b.WriteString("\n\n")
		}
		b.WriteString(m.form.View())

	case domain.StateAwaitingCompletion:
		if m.request != nil {
			b.WriteString(formatter.FormatRequestSummary(*m.request))
			b.WriteString("\n\n")
		}
		b.WriteString(m.spinner.View() + " " + formatter.Dim(generating))

	case domain.StateSuccess, domain.StateFailed:
		if m.request != nil {
			b.WriteString(formatter.FormatRequestSummary(*m.request))
			b.WriteString("\n\n")
		}
		if m.outcome != nil {
			b.WriteString(formatter.FormatOutcome(*m.outcome, m.boxWidth()))
			b.WriteString("\n\n")
		}
		b.WriteString(formatter.Dim("r new plan • q quit"))
	}

	b.WriteString("\n")
	return b.String()
}

// lastOutcome returns the most recent completion outcome, if any.
func (m *planModel) lastOutcome() (planner.Outcome, bool) {
	if m.outcome == nil {
		return planner.Outcome{}, false
	}
	return *m.outcome, true
}
