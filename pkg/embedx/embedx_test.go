package embedx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.4028235e38}
	out, err := embedx.Decode(embedx.Encode(in))
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = embedx.Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCosine(t *testing.T) {
	s, err := embedx.Cosine([]float32{1, 0}, []float32{1, 0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, s, 1e-9)

	s, err = embedx.Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.0, s, 1e-9)

	s, err = embedx.Cosine([]float32{0, 0}, []float32{0, 1})
	require.NoError(t, err)
	require.Zero(t, s)

	_, err = embedx.Cosine([]float32{1}, []float32{1, 2})
	require.ErrorIs(t, err, embedx.ErrDimensionMismatch)
}

func TestTopK(t *testing.T) {
	corpus := [][]float32{{0, 1}, {1, 0}, {1, 1}, {1}}
	got := embedx.TopK([]float32{1, 0}, corpus, 2)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].Index)
	require.Equal(t, 2, got[1].Index)
}

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req["model"])
		require.Equal(t, "Ana López. Psychologist", req["prompt"])

		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	e := embedx.NewOllama(srv.URL, "test-model", 3)
	vec, err := e.Embed(context.Background(), "Ana López. Psychologist")
	require.NoError(t, err)
	require.Len(t, vec, 3)
	require.Equal(t, "ollama:test-model", e.Name())
}

func TestOllamaEmbedRejectsWrongDimension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.1}})
	}))
	defer srv.Close()

	_, err := embedx.NewOllama(srv.URL, "m", 768).Embed(context.Background(), "x")
	require.ErrorIs(t, err, embedx.ErrDimensionMismatch)
}

func TestOllamaEmbedSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := embedx.NewOllama(srv.URL, "m", 3).Embed(context.Background(), "x")
	require.ErrorContains(t, err, "status 404")
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := embedx.New(context.Background(), embedx.Config{Provider: "word2vec"})
	require.Error(t, err)
}
