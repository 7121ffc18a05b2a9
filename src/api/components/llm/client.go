package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
)

const systemPrompt = "You are a rigorous news verification agent. " +
	"You MUST respond ONLY with a valid JSON object with keys: " +
	"verdict (one of: True, False, Mixed, Uncertain), " +
	"score (0-100 integer), and bullets (list of short strings)."

// Result is the normalized outcome of one model call. It is always fully
// populated; degraded calls carry a conservative score and explanatory
// bullets instead of an error.
type Result struct {
	Verdict string   `json:"verdict"`
	Score   int      `json:"score"`
	Bullets []string `json:"bullets"`
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the composed prompt to the model and normalizes its reply.
// It never returns an error: a missing API key yields the fallback result
// without a network call, and transport or provider failures yield results
// with distinguishing low scores. No call is retried.
func (c *Client) Analyze(ctx context.Context, prompt string) Result {
	if c.apiKey == "" {
		return Result{
			Verdict: VerdictUncertain,
			Score:   50,
			Bullets: []string{"LLM API key not configured; running in fallback mode."},
		}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return transportFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return transportFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("LLM request failed: %v", err)
		return transportFailure(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err)
	}

	if resp.StatusCode != http.StatusOK {
		details := string(respBody)
		if len(details) > 200 {
			details = details[:200]
		}
		log.Printf("LLM provider returned status %d", resp.StatusCode)
		return Result{
			Verdict: VerdictUncertain,
			Score:   45,
			Bullets: []string{
				"LLM provider returned an error.",
				fmt.Sprintf("Status: %d", resp.StatusCode),
				"Details: " + details,
			},
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Choices) == 0 {
		return Result{
			Verdict: VerdictUncertain,
			Score:   50,
			Bullets: []string{"LLM response contained no choices."},
		}
	}

	return ParseResult(strings.TrimSpace(parsed.Choices[0].Message.Content))
}

func transportFailure(err error) Result {
	return Result{
		Verdict: VerdictUncertain,
		Score:   40,
		Bullets: []string{fmt.Sprintf("LLM request failed: %v", err)},
	}
}
