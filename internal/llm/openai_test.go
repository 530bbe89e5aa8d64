package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenAIClient_SendsSchemaAndParsesContent(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"questions\":[]}"}}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewOpenAIClient("test-key", "gpt-4.1-mini", srv.URL, zap.NewNop())
	out, err := c.Complete(context.Background(), Request{
		System:      "persona",
		User:        "write questions",
		Temperature: 0.7,
		MaxTokens:   800,
		Schema: &Schema{
			Name:       "mcq_response",
			Definition: map[string]any{"type": "object"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, out)

	assert.Equal(t, "gpt-4.1-mini", captured["model"])
	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])

	rf := captured["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", rf["type"])
	js := rf["json_schema"].(map[string]any)
	assert.Equal(t, "mcq_response", js["name"])
	assert.Equal(t, true, js["strict"])
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewOpenAIClient("k", "m", srv.URL, zap.NewNop())
	_, err := c.Complete(context.Background(), Request{User: "hi"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClient_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewOpenAIClient("k", "m", srv.URL, zap.NewNop())
	_, err := c.Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenAIClient_MissingKey(t *testing.T) {
	c := NewOpenAIClient("", "m", "", zap.NewNop())
	_, err := c.Complete(context.Background(), Request{User: "hi"})
	assert.Error(t, err)
}

func TestNewOpenAIClient_EndpointNormalization(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "https://api.openai.com/v1/chat/completions"},
		{"https://proxy.local", "https://proxy.local/v1/chat/completions"},
		{"https://proxy.local/", "https://proxy.local/v1/chat/completions"},
		{"https://proxy.local/v1", "https://proxy.local/v1/chat/completions"},
		{"https://gw.local/v1beta/openai", "https://gw.local/v1beta/openai/chat/completions"},
		{"https://p.local/v1/chat/completions", "https://p.local/v1/chat/completions"},
	}
	for _, tc := range cases {
		c := NewOpenAIClient("k", "m", tc.in, zap.NewNop())
		assert.Equal(t, tc.want, c.endpoint, "base url %q", tc.in)
	}
}
