package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider calls a hosted generative language model over its REST API
type HTTPProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPProvider creates a provider for the model endpoint. The API key
// is passed as the key query parameter on each request.
func NewHTTPProvider(endpoint, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// generateRequest is the wire format the model endpoint expects
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the reply we read
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Feedback sends the learner's transcript to the model and returns its
// coaching text
func (p *HTTPProvider) Feedback(ctx context.Context, req Request) (string, error) {
	body := generateRequest{
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: buildPrompt(req)}},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode feedback request: %w", err)
	}

	url := p.endpoint
	if p.apiKey != "" {
		url += "?key=" + p.apiKey
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create feedback request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode feedback response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// buildPrompt frames the transcript for the model as a coaching task
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are a friendly English speaking coach for beginners. ")
	b.WriteString("A learner completed the lesson \"")
	b.WriteString(req.LessonTitle)
	b.WriteString("\". The task was: ")
	b.WriteString(req.Prompt)
	b.WriteString("\n\nThe learner said: \"")
	b.WriteString(req.Transcript)
	b.WriteString("\"\n\nGive two or three short sentences of feedback. ")
	b.WriteString("Start with something the learner did well, then offer one concrete improvement. ")
	b.WriteString("Use simple words.")
	return b.String()
}
