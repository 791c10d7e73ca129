package llmx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fmalaspina/vallebot/pkg/llmx"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		`{"name":"Ana"}`:                   `{"name":"Ana"}`,
		"```json\n{\"name\":\"Ana\"}\n```": `{"name":"Ana"}`,
		"```\n{\"name\":\"Ana\"}\n```":     `{"name":"Ana"}`,
		"  {\"a\":1}  ":                    `{"a":1}`,
	}
	for in, want := range cases {
		require.Equal(t, want, llmx.StripCodeFence(in), "input %q", in)
	}
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)

		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Format   string `json:"format"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.False(t, req.Stream)
		require.Equal(t, "json", req.Format)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "system", req.Messages[0].Role)
		require.Equal(t, "hola", req.Messages[1].Content)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": `{"name":"Ana","email":"","bio":""}`},
		})
	}))
	defer srv.Close()

	out, err := llmx.NewOllama(srv.URL, "m").Complete(context.Background(), "extract", "hola")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Ana","email":"","bio":""}`, out)
}

func TestOllamaCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := llmx.NewOllama(srv.URL, "m").Complete(context.Background(), "s", "u")
	require.ErrorContains(t, err, "status 500")
}

func TestNewNoneDisablesCompleter(t *testing.T) {
	c, err := llmx.New(context.Background(), llmx.Config{Provider: "none"})
	require.NoError(t, err)
	require.Nil(t, c)
}
