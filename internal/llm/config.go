package llm

import "time"

const (
	// DefaultEndpoint is the OpenRouter chat-completions URL.
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

	// DefaultModel is the model identifier sent with every request.
	DefaultModel = "meta-llama/llama-4-maverick:free"
)

// Config holds the settings for the completion client.
type Config struct {
	Endpoint string
	Model    string
	// Timeout bounds a single call. Zero leaves the call unbounded apart
	// from whatever the transport and the caller's context impose.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at OpenRouter with no timeout.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
	}
}
