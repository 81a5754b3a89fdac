// Package stt turns downloaded audio into text via Google Cloud
// Speech-to-Text v1, chunking long audio and reassembling results in
// chunk order.
package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hammamikhairi/cookclip/internal/logger"
)

const speechBaseURL = "https://speech.googleapis.com/v1"

// GoogleOption configures the GoogleClient.
type GoogleOption func(*GoogleClient)

// WithLanguage sets the recognition language code (default en-US).
func WithLanguage(code string) GoogleOption {
	return func(c *GoogleClient) { c.language = code }
}

// WithModel sets an explicit recognition model. Left empty, the API
// default is used; forcing a model string the v1 API does not know
// produces INVALID_ARGUMENT.
func WithModel(model string) GoogleOption {
	return func(c *GoogleClient) { c.model = model }
}

// WithHTTPTimeout sets the HTTP client timeout per API call.
func WithHTTPTimeout(d time.Duration) GoogleOption {
	return func(c *GoogleClient) { c.httpClient.Timeout = d }
}

// GoogleClient talks to the Speech v1 REST API directly.
type GoogleClient struct {
	apiKey     string
	language   string
	model      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewGoogleClient creates a Speech v1 client authenticated by API key.
func NewGoogleClient(apiKey string, log *logger.Logger, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		apiKey:     apiKey,
		language:   "en-US",
		httpClient: &http.Client{Timeout: 120 * time.Second},
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// recognitionConfig mirrors the v1 RecognitionConfig wire shape for
// LINEAR16 16kHz mono input.
type recognitionConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
	EnablePunct     bool   `json:"enableAutomaticPunctuation"`
	Model           string `json:"model,omitempty"`
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

type operationResponse struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Response *recognizeResponse `json:"response"`
	Error    *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GoogleClient) config() recognitionConfig {
	return recognitionConfig{
		Encoding:        "LINEAR16",
		SampleRateHertz: 16000,
		LanguageCode:    c.language,
		EnablePunct:     true,
		Model:           c.model,
	}
}

// Recognize transcribes a short WAV clip with the synchronous endpoint.
// The API rejects synchronous input much past a minute, which is why
// callers keep chunks at 55s.
func (c *GoogleClient) Recognize(ctx context.Context, wav []byte) (string, error) {
	var resp recognizeResponse
	if err := c.post(ctx, "speech:recognize", wav, &resp); err != nil {
		return "", err
	}
	return collectTranscript(&resp), nil
}

// RecognizeLong transcribes a WAV clip with the long-running endpoint,
// polling the returned operation until it completes.
func (c *GoogleClient) RecognizeLong(ctx context.Context, wav []byte) (string, error) {
	var op operationResponse
	if err := c.post(ctx, "speech:longrunningrecognize", wav, &op); err != nil {
		return "", err
	}
	if op.Name == "" {
		return "", fmt.Errorf("stt: long-running recognize returned no operation name")
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		done, err := c.pollOperation(ctx, op.Name, &op)
		if err != nil {
			return "", err
		}
		if !done {
			continue
		}
		if op.Error != nil {
			return "", fmt.Errorf("stt: operation failed (%d): %s", op.Error.Code, op.Error.Message)
		}
		if op.Response == nil {
			return "", nil
		}
		return collectTranscript(op.Response), nil
	}
}

func (c *GoogleClient) post(ctx context.Context, method string, wav []byte, out any) error {
	reqBody := recognizeRequest{Config: c.config()}
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(wav)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("stt: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", speechBaseURL, method, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("stt: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("stt: POST %s (%d audio bytes)", method, len(wav))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stt: %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stt: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stt: %s returned %s: %s", method, resp.Status, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("stt: unmarshal response: %w", err)
	}
	return nil
}

func (c *GoogleClient) pollOperation(ctx context.Context, name string, out *operationResponse) (bool, error) {
	url := fmt.Sprintf("%s/operations/%s?key=%s", speechBaseURL, name, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("stt: poll operation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("stt: poll returned %s: %s", resp.Status, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("stt: unmarshal operation: %w", err)
	}
	return out.Done, nil
}

func collectTranscript(resp *recognizeResponse) string {
	var b bytes.Buffer
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		t := r.Alternatives[0].Transcript
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}
