package cli

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/testutil"
)

// testApp returns an App that loads its configuration from flags, with a
// fixed clock and no terminal.
func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("STUDYPLAN_API_KEY", "")
	return &App{
		Now:           testutil.FixedClock(testutil.Today),
		IsInteractive: func() bool { return false },
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	t.Cleanup(func() { _ = app.Close() })
	return buf.String(), err
}

func planArgs(endpoint string, extra ...string) []string {
	args := []string{"plan",
		"--endpoint", endpoint,
		"--api-key", "sk-or-test",
		"--subject", "Biology",
		"--hours", "10",
		"--deadline", testutil.DaysFromToday(2),
	}
	return append(args, extra...)
}

func TestPlanCmd_Success(t *testing.T) {
	srv := testutil.NewReplyServer(t, "Day 1: cells\nDay 2: genetics")
	app := testApp(t)

	out, err := executeCmd(t, app, planArgs(srv.URL)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Biology")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "Your Personalized Study Plan")
	assert.Contains(t, out, "Day 2: genetics")
	assert.NotContains(t, out, "sk-or-test")

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer sk-or-test", calls[0].Authorization)
}

func TestPlanCmd_ModelFlagIsSent(t *testing.T) {
	srv := testutil.NewReplyServer(t, "ok")
	app := testApp(t)

	_, err := executeCmd(t, app, planArgs(srv.URL, "--model", "openrouter/test-model")...)
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "openrouter/test-model", calls[0].Model)
}

func TestPlanCmd_APIKeyFromEnvironment(t *testing.T) {
	srv := testutil.NewReplyServer(t, "ok")
	app := testApp(t)
	t.Setenv("STUDYPLAN_API_KEY", "sk-or-env")

	args := []string{"plan", "--endpoint", srv.URL,
		"--subject", "Biology", "--hours", "10", "--deadline", testutil.DaysFromToday(0)}
	_, err := executeCmd(t, app, args...)
	require.NoError(t, err)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer sk-or-env", calls[0].Authorization)
}

func TestPlanCmd_MissingCredential(t *testing.T) {
	srv := testutil.NewReplyServer(t, "unused")
	app := testApp(t)

	args := []string{"plan", "--endpoint", srv.URL,
		"--subject", "Biology", "--hours", "10", "--deadline", testutil.DaysFromToday(2)}
	out, err := executeCmd(t, app, args...)

	assert.ErrorIs(t, err, ErrPlanFailed)
	assert.Contains(t, out, "Please enter your OpenRouter API key.")
	assert.Equal(t, 0, srv.Hits())
}

func TestPlanCmd_InvalidHours(t *testing.T) {
	srv := testutil.NewReplyServer(t, "unused")
	app := testApp(t)

	out, err := executeCmd(t, app, planArgs(srv.URL, "--hours", "abc")...)

	assert.ErrorIs(t, err, ErrPlanFailed)
	assert.Contains(t, out, "Please enter a valid, positive number for total study hours.")
	assert.Equal(t, 0, srv.Hits())
}

func TestPlanCmd_PastDeadline(t *testing.T) {
	srv := testutil.NewReplyServer(t, "unused")
	app := testApp(t)

	_, err := executeCmd(t, app, planArgs(srv.URL, "--deadline", testutil.DaysFromToday(-1))...)

	assert.ErrorIs(t, err, ErrPlanFailed)
	assert.Equal(t, 0, srv.Hits())
}

func TestPlanCmd_HTTPErrorShowsBody(t *testing.T) {
	srv := testutil.NewCompletionServer(t, http.StatusTooManyRequests, `{"error":"rate limited"}`)
	app := testApp(t)

	out, err := executeCmd(t, app, planArgs(srv.URL)...)

	assert.ErrorIs(t, err, ErrPlanFailed)
	assert.Contains(t, out, "HTTP error occurred")
	assert.Contains(t, out, "429")
	assert.Contains(t, out, "rate limited")
	assert.Equal(t, 1, srv.Hits())
}

func TestPlanCmd_NoFlagsWithoutTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
	assert.NotErrorIs(t, err, ErrPlanFailed)
}

func TestRootCmd_NoArgsWithoutTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

func TestPromptCmd_PrintsPromptWithoutCredential(t *testing.T) {
	srv := testutil.NewReplyServer(t, "unused")
	app := testApp(t)

	out, err := executeCmd(t, app, "prompt", "--endpoint", srv.URL,
		"--subject", "Biology", "--hours", "10", "--deadline", testutil.DaysFromToday(2))
	require.NoError(t, err)

	assert.Contains(t, out, "Create a personalized study plan for the subject 'Biology'.")
	assert.Contains(t, out, "which gives 3 days including today")
	assert.Contains(t, out, "professional academic assistant")
	assert.Equal(t, 0, srv.Hits())
}

func TestPromptCmd_MissingSubject(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "prompt", "--hours", "10", "--deadline", testutil.DaysFromToday(2))

	assert.ErrorIs(t, err, ErrPlanFailed)
	assert.Contains(t, out, "Please fill in all fields!")
}

func TestRootCmd_InvalidConfiguration(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "prompt", "--log-level", "loud")

	assert.ErrorIs(t, err, config.ErrConfiguration)
}

func TestRootCmd_InvalidEndpoint(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "--endpoint", "not a url", "--subject", "x")

	assert.ErrorIs(t, err, config.ErrConfiguration)
}

func TestRootCmd_LogFile(t *testing.T) {
	srv := testutil.NewReplyServer(t, "ok")
	app := testApp(t)
	logPath := t.TempDir() + "/logs/studyplan.log"

	out, err := executeCmd(t, app, planArgs(srv.URL, "--log-file", logPath, "--debug")...)
	require.NoError(t, err)

	assert.NotContains(t, out, "completion call")
	assert.FileExists(t, logPath)
}
