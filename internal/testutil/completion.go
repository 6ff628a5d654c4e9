package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedCall is one request received by a CompletionServer.
type RecordedCall struct {
	Authorization string
	Model         string
	Messages      []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
}

// CompletionServer is an httptest server impersonating a chat-completions
// endpoint. It answers every request with the configured status and body.
type CompletionServer struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []RecordedCall
	status int
	body   string
}

// NewCompletionServer starts a server that replies with status and body.
// It is closed when the test completes.
func NewCompletionServer(t *testing.T, status int, body string) *CompletionServer {
	t.Helper()
	cs := &CompletionServer{status: status, body: body}
	cs.Server = httptest.NewServer(http.HandlerFunc(cs.handle))
	t.Cleanup(cs.Close)
	return cs
}

// NewReplyServer starts a server returning a 200 whose first choice carries content.
func NewReplyServer(t *testing.T, content string) *CompletionServer {
	t.Helper()
	data, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("encoding reply: %v", err)
	}
	return NewCompletionServer(t, http.StatusOK,
		fmt.Sprintf(`{"model":"test-model","choices":[{"message":{"role":"assistant","content":%s}}]}`, data))
}

func (cs *CompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	call := RecordedCall{Authorization: r.Header.Get("Authorization")}
	_ = json.Unmarshal(raw, &call)

	cs.mu.Lock()
	cs.calls = append(cs.calls, call)
	cs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(cs.status)
	io.WriteString(w, cs.body)
}

// Calls returns a copy of the requests received so far.
func (cs *CompletionServer) Calls() []RecordedCall {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]RecordedCall(nil), cs.calls...)
}

// Hits returns the number of requests received.
func (cs *CompletionServer) Hits() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.calls)
}
