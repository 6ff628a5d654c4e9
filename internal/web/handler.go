// Package web serves the submission form over HTTP. Each POST is one
// independent pass through the planner; nothing is kept between requests.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planner"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// maxFormBytes bounds the POST body.
const maxFormBytes = 64 << 10

type handler struct {
	svc    planner.Service
	logger *log.Logger
	now    func() time.Time
}

// Option configures the handler.
type Option func(*handler)

// WithClock sets the source of "today" used for form defaults.
func WithClock(now func() time.Time) Option {
	return func(h *handler) {
		if now != nil {
			h.now = now
		}
	}
}

type errorView struct {
	Message  string
	Body     string
	ShowBody bool
}

type pageData struct {
	Today    string
	Subject  string
	Hours    string
	Deadline string
	Warning  string
	Error    *errorView
	Summary  string
	Plan     string
	Model    string
}

// NewHandler returns the router for GET /, POST /plan and GET /healthz.
func NewHandler(svc planner.Service, logger *log.Logger, opts ...Option) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &handler{svc: svc, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/", h.form)
	r.Post("/plan", h.plan)

	return r
}

func (h *handler) form(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(domain.DateLayout)
	h.render(w, http.StatusOK, pageData{Today: today, Deadline: today})
}

func (h *handler) plan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := domain.PlanInput{
		APIKey:   r.PostForm.Get("api_key"),
		Subject:  r.PostForm.Get("subject"),
		Hours:    r.PostForm.Get("hours"),
		Deadline: r.PostForm.Get("deadline"),
	}
	data := pageData{
		Today:    h.now().Format(domain.DateLayout),
		Subject:  in.Subject,
		Hours:    in.Hours,
		Deadline: in.Deadline,
	}

	sub, err := h.svc.Prepare(in)
	if err != nil {
		data.Warning = domain.AsPlanError(err).Warning()
		h.render(w, http.StatusUnprocessableEntity, data)
		return
	}
	data.Summary = fmt.Sprintf("%s · %s hours · due %s · %d %s",
		sub.Request.Subject, planner.FormatHours(sub.Request.TotalHours),
		sub.Request.DeadlineISO(), sub.Request.Days, dayWord(sub.Request.Days))

	outcome := h.svc.Complete(r.Context(), sub)
	if outcome.Err != nil {
		data.Error = errorViewOf(outcome.Err)
		h.render(w, http.StatusBadGateway, data)
		return
	}

	data.Plan = outcome.Reply
	data.Model = fmt.Sprintf("%s · %s", outcome.Model, outcome.Latency.Round(time.Millisecond))
	h.render(w, http.StatusOK, data)
}

func errorViewOf(err *domain.PlanError) *errorView {
	if err.Kind == domain.ErrHTTP {
		body := err.Body
		if body == "" {
			body = "(empty response body)"
		}
		return &errorView{Message: "HTTP error occurred: " + err.Message, Body: body, ShowBody: true}
	}
	return &errorView{Message: "An error occurred: " + err.Message}
}

// render executes into a buffer first so a template failure never leaves a
// half-written page behind a success status.
func (h *handler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		h.logger.Error("rendering page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
