package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrMissingAPIKey indicates the client was configured without credentials.
var ErrMissingAPIKey = errors.New("runware: api key is required")

const (
	defaultBaseURL = "https://api.runware.ai/v1"
	defaultModel   = "rundiffusion:130@100"

	defaultNegativePrompt = "low quality, bad anatomy, distorted, blurry"
)

// Options configures the Runware client.
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
	PollInterval   time.Duration
	MaxPolls       int
}

// Client performs HTTP calls to the Runware image-inference tasks API.
type Client struct {
	apiKey       string
	baseURL      string
	model        string
	httpClient   *http.Client
	logger       *zerolog.Logger
	pollInterval time.Duration
	maxPolls     int
}

// ImageRequest captures the inputs for one image-generation task.
type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
}

// ImageAsset is the normalized result of a completed task.
type ImageAsset struct {
	URL    string
	Data   []byte
	Format string
}

type taskRequest struct {
	TaskType       string   `json:"taskType"`
	TaskUUID       string   `json:"taskUUID"`
	PositivePrompt string   `json:"positivePrompt"`
	NegativePrompt string   `json:"negativePrompt,omitempty"`
	Height         int      `json:"height"`
	Width          int      `json:"width"`
	Model          string   `json:"model"`
	Steps          int      `json:"steps"`
	CFGScale       float64  `json:"CFGScale"`
	OutputType     []string `json:"outputType"`
	OutputFormat   string   `json:"outputFormat"`
	NumberResults  int      `json:"numberResults"`
	IncludeCost    bool     `json:"includeCost"`
}

type taskResult struct {
	TaskUUID string `json:"taskUUID"`
	Status   string `json:"status"`
	ImageURL string `json:"imageURL"`
	Error    string `json:"error"`
}

type tasksResponse struct {
	Data   []taskResult `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

type taskStatusResponse struct {
	Data taskResult `json:"data"`
}

// NewClient constructs a client with defaults applied. A missing API key is
// not an error here; callers check HasCredentials and degrade gracefully.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	maxPolls := opts.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 30
	}
	return &Client{
		apiKey:       opts.APIKey,
		baseURL:      baseURL,
		model:        model,
		httpClient:   httpClient,
		logger:       opts.Logger,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

// HasCredentials reports whether an API key was configured.
func (c *Client) HasCredentials() bool {
	return c != nil && c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return defaultModel
	}
	return c.model
}

// GenerateImage submits an imageInference task and returns the downloaded
// image bytes. When the create response carries no immediate imageURL the
// client polls the task until completion.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageAsset, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("runware: prompt is required")
	}
	width, height := req.Width, req.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 1024
	}
	negative := req.NegativePrompt
	if negative == "" {
		negative = defaultNegativePrompt
	}

	taskUUID := uuid.NewString()
	payload := []taskRequest{{
		TaskType:       "imageInference",
		TaskUUID:       taskUUID,
		PositivePrompt: req.Prompt,
		NegativePrompt: negative,
		Height:         height,
		Width:          width,
		Model:          c.model,
		Steps:          35,
		CFGScale:       7.0,
		OutputType:     []string{"URL"},
		OutputFormat:   "JPEG",
		NumberResults:  1,
		IncludeCost:    true,
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("runware: marshal task: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("runware: build request: %w", err)
	}
	c.setHeaders(httpReq)

	if c.logger != nil {
		c.logger.Debug().Str("task_uuid", taskUUID).Str("model", c.model).Msg("runware: creating image task")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("runware: create task: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("runware: read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("runware: authentication failed (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("runware: create task failed: %s", apiErrorText(respBody, resp.StatusCode))
	}

	var parsed tasksResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("runware: decode response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("runware: %s: %s", parsed.Errors[0].Code, parsed.Errors[0].Message)
	}
	if len(parsed.Data) == 0 {
		return nil, errors.New("runware: response contains no data")
	}

	result := parsed.Data[0]
	if result.ImageURL == "" {
		result, err = c.pollTask(ctx, taskUUID)
		if err != nil {
			return nil, err
		}
	}

	data, err := c.download(ctx, result.ImageURL)
	if err != nil {
		return nil, err
	}
	return &ImageAsset{URL: result.ImageURL, Data: data, Format: "jpeg"}, nil
}

func (c *Client) pollTask(ctx context.Context, taskUUID string) (taskResult, error) {
	for attempt := 0; attempt < c.maxPolls; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return taskResult{}, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		result, err := c.taskStatus(ctx, taskUUID)
		if err != nil {
			if ctx.Err() != nil {
				return taskResult{}, ctx.Err()
			}
			if c.logger != nil {
				c.logger.Warn().Err(err).Str("task_uuid", taskUUID).Msg("runware: poll failed")
			}
			continue
		}
		switch result.Status {
		case "completed":
			if result.ImageURL == "" {
				return taskResult{}, errors.New("runware: completed task has no image URL")
			}
			return result, nil
		case "failed":
			msg := result.Error
			if msg == "" {
				msg = "unknown error"
			}
			return taskResult{}, fmt.Errorf("runware: task failed: %s", msg)
		}
	}
	return taskResult{}, fmt.Errorf("runware: timed out after %d polls", c.maxPolls)
}

func (c *Client) taskStatus(ctx context.Context, taskUUID string) (taskResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tasks/"+taskUUID, nil)
	if err != nil {
		return taskResult{}, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return taskResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return taskResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return taskResult{}, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var parsed taskStatusResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return taskResult{}, err
	}
	return parsed.Data, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("runware: build download: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("runware: download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("runware: download image: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func apiErrorText(body []byte, status int) string {
	var parsed tasksResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		parts := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Code, e.Message))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("status %d: %s", status, strings.TrimSpace(string(body)))
}
