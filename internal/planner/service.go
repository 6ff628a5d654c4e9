package planner

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/llm"
)

// Submission is a validated request together with its rendered prompt.
// The credential stays unexported and is handed only to the client.
type Submission struct {
	Request domain.StudyRequest
	Prompt  string
	apiKey  string
}

// Outcome is the terminal result of one pass through the pipeline.
type Outcome struct {
	RequestID string
	State     domain.State
	Prompt    string
	Reply     string
	Model     string
	Latency   time.Duration
	Err       *domain.PlanError
}

// Failed builds the Failed outcome for err.
func Failed(requestID string, err error) Outcome {
	return Outcome{RequestID: requestID, State: domain.StateFailed, Err: domain.AsPlanError(err)}
}

// Service runs the Validate -> BuildPrompt -> Complete pipeline.
type Service interface {
	// Prepare validates the input and builds the prompt. No network call.
	Prepare(in domain.PlanInput) (Submission, error)

	// Complete sends the prepared prompt to the completion endpoint once.
	Complete(ctx context.Context, sub Submission) Outcome

	// Plan runs Prepare then Complete, short-circuiting on the first error.
	Plan(ctx context.Context, in domain.PlanInput) Outcome
}

type service struct {
	client llm.Client
	now    func() time.Time
	logger *log.Logger
}

// NewService creates a Service backed by client. now supplies "today" and
// defaults to time.Now.
func NewService(client llm.Client, now func() time.Time, logger *log.Logger) Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &service{client: client, now: now, logger: logger}
}

func (s *service) Prepare(in domain.PlanInput) (Submission, error) {
	req, err := Validate(in, s.now())
	if err != nil {
		pe := domain.AsPlanError(err)
		s.logger.Debug("submission rejected", "kind", pe.Kind, "field", pe.Field)
		return Submission{}, pe
	}
	return Submission{
		Request: req,
		Prompt:  BuildPrompt(req),
		apiKey:  strings.TrimSpace(in.APIKey),
	}, nil
}

func (s *service) Complete(ctx context.Context, sub Submission) Outcome {
	requestID := sub.Request.ID.String()
	if sub.apiKey == "" {
		return Failed(requestID, domain.NewValidationError(domain.ErrMissingCredential, "api_key",
			"enter your OpenRouter API key"))
	}

	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		APIKey:       sub.apiKey,
		SystemPrompt: SystemPrompt(),
		UserPrompt:   sub.Prompt,
		RequestID:    requestID,
	})
	if err != nil {
		out := Failed(requestID, clientError(err))
		out.Prompt = sub.Prompt
		return out
	}

	return Outcome{
		RequestID: requestID,
		State:     domain.StateSuccess,
		Prompt:    sub.Prompt,
		Reply:     resp.Text,
		Model:     resp.Model,
		Latency:   time.Duration(resp.LatencyMs) * time.Millisecond,
	}
}

func (s *service) Plan(ctx context.Context, in domain.PlanInput) Outcome {
	sub, err := s.Prepare(in)
	if err != nil {
		return Failed("", err)
	}
	return s.Complete(ctx, sub)
}

// clientError maps a completion client failure onto the error taxonomy.
func clientError(err error) *domain.PlanError {
	var httpErr *llm.HTTPError
	if errors.As(err, &httpErr) {
		pe := domain.NewHTTPError(httpErr.StatusCode, httpErr.Body)
		pe.Message = httpErr.Error()
		return pe
	}
	return domain.NewGenericError(err)
}
