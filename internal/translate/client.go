// Package translate provides language detection and text translation
// against a LibreTranslate-compatible HTTP backend.
//
// Both capabilities are exposed as small interfaces so the pipeline can be
// tested with fakes; the real Client implements both. Failure policy (falling
// back to "unknown" or to the untranslated text) belongs to the caller, not
// this package.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"menulens/internal/config"
)

// Detector identifies the dominant language of a piece of text.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Translator translates text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Client talks to a LibreTranslate-compatible backend.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient creates a translation client from configuration.
func NewClient(cfg *config.TranslateConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Detect returns the language code the backend is most confident about.
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	body := map[string]string{"q": text}
	if c.apiKey != "" {
		body["api_key"] = c.apiKey
	}

	var detections []detection
	if err := c.post(ctx, "/detect", body, &detections); err != nil {
		return "", err
	}
	if len(detections) == 0 {
		return "", fmt.Errorf("detection backend returned no candidates")
	}

	best := detections[0]
	for _, d := range detections[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return best.Language, nil
}

type translation struct {
	TranslatedText string `json:"translatedText"`
}

// Translate returns text translated into targetLang. The source language is
// left to the backend to auto-detect.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body := map[string]string{
		"q":      text,
		"source": "auto",
		"target": targetLang,
		"format": "text",
	}
	if c.apiKey != "" {
		body["api_key"] = c.apiKey
	}

	var result translation
	if err := c.post(ctx, "/translate", body, &result); err != nil {
		return "", err
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("translation backend returned empty result")
	}
	return result.TranslatedText, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
