package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	defaultEndpoint  = "https://generativelanguage.googleapis.com/v1beta/models/imagen-3.0-generate-002:predict"
	defaultTimeoutMs = 60000
)

// ErrUnavailable indicates the image service could not be reached.
var ErrUnavailable = errors.New("image service unavailable")

// Config holds the image generation settings.
type Config struct {
	Endpoint  string
	APIKey    string
	TimeoutMs int
}

// DefaultConfig returns the stock Imagen predict configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:  defaultEndpoint,
		TimeoutMs: defaultTimeoutMs,
	}
}

// LoadConfig builds a Config from defaults plus environment overrides.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("MANIFEST_IMAGE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MANIFEST_IMAGE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("MANIFEST_IMAGE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TimeoutMs = ms
		}
	}

	return cfg
}

// Generator produces an image for a finished prompt.
type Generator interface {
	// Generate returns a data URL for the rendered image. An empty URL
	// with a nil error means the service responded without an image.
	Generate(ctx context.Context, prompt string) (string, error)
}

// predictClient implements Generator against the Imagen predict API.
type predictClient struct {
	cfg  Config
	http *http.Client
}

// NewPredictClient creates a Generator backed by the predict endpoint.
func NewPredictClient(cfg Config) Generator {
	return &predictClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// predictRequest is the JSON body sent to the predict endpoint.
type predictRequest struct {
	Instances  predictInstance   `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

func (c *predictClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := predictRequest{
		Instances:  predictInstance{Prompt: prompt},
		Parameters: predictParameters{SampleCount: 1},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := c.cfg.Endpoint
	if c.cfg.APIKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return "", ErrUnavailable
		}
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image service returned status %d: %s", resp.StatusCode, string(raw))
	}

	var decoded predictResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	// A well-formed response with no prediction is a no-image outcome,
	// not a transport failure.
	if len(decoded.Predictions) == 0 || decoded.Predictions[0].BytesBase64Encoded == "" {
		return "", nil
	}

	return "data:image/png;base64," + decoded.Predictions[0].BytesBase64Encoded, nil
}
