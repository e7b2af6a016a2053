package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const providerTimeout = 60 * time.Second

// GeminiProvider talks to a Gemini-style generateContent endpoint.
type GeminiProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGeminiProvider(baseURL, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   "gemini-2.0-flash",
		client:  &http.Client{Timeout: providerTimeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		// Gemini calls the assistant side "model".
		if role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, raw)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// HTTPHumanizer posts text to the rewriting service and returns the
// rewritten version.
type HTTPHumanizer struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPHumanizer(url, apiKey string) *HTTPHumanizer {
	return &HTTPHumanizer{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: providerTimeout},
	}
}

type humanizeRequest struct {
	Text string `json:"text"`
}

type humanizeResponse struct {
	Text string `json:"text"`
}

func (h *HTTPHumanizer) Humanize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(humanizeRequest{Text: text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, raw)
	}

	var parsed humanizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return parsed.Text, nil
}
