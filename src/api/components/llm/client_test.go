package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      "test-model",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func chatReply(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

func TestAnalyzeMissingKeyMakesNoCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	res := newTestClient("", srv.URL).Analyze(context.Background(), "prompt")

	assert.Equal(t, int64(0), calls.Load())
	assert.Equal(t, VerdictUncertain, res.Verdict)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, []string{"LLM API key not configured; running in fallback mode."}, res.Bullets)
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 0.2, req.Temperature)
		assert.Equal(t, 2, len(req.Messages))
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "the prompt", req.Messages[1].Content)

		json.NewEncoder(w).Encode(chatReply(`{"verdict":"False","score":82,"bullets":["a","b"]}`))
	}))
	defer srv.Close()

	res := newTestClient("test-key", srv.URL).Analyze(context.Background(), "the prompt")

	assert.Equal(t, VerdictFalse, res.Verdict)
	assert.Equal(t, 82, res.Score)
	assert.Equal(t, []string{"a", "b"}, res.Bullets)
}

func TestAnalyzeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("server error"))
	}))
	defer srv.Close()

	res := newTestClient("test-key", srv.URL).Analyze(context.Background(), "prompt")

	assert.Equal(t, VerdictUncertain, res.Verdict)
	assert.Equal(t, 45, res.Score)
	assert.Equal(t, []string{
		"LLM provider returned an error.",
		"Status: 500",
		"Details: server error",
	}, res.Bullets)
}

func TestAnalyzeProviderErrorTruncatesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer srv.Close()

	res := newTestClient("test-key", srv.URL).Analyze(context.Background(), "prompt")

	assert.Equal(t, 45, res.Score)
	assert.Equal(t, "Details: "+strings.Repeat("x", 200), res.Bullets[2])
}

func TestAnalyzeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := newTestClient("test-key", srv.URL).Analyze(context.Background(), "prompt")

	assert.Equal(t, VerdictUncertain, res.Verdict)
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, 1, len(res.Bullets))
	assert.True(t, strings.HasPrefix(res.Bullets[0], "LLM request failed:"))
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	res := newTestClient("test-key", srv.URL).Analyze(context.Background(), "prompt")

	assert.Equal(t, VerdictUncertain, res.Verdict)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, []string{"LLM response contained no choices."}, res.Bullets)
}

func TestAnalyzePreservesRawContentOnParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatReply("I think this claim is probably true."))
	}))
	defer srv.Close()

	res := newTestClient("test-key", srv.URL).Analyze(context.Background(), "prompt")

	assert.Equal(t, VerdictUncertain, res.Verdict)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, []string{"I think this claim is probably true."}, res.Bullets)
}
