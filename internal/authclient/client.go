package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/khanghh/cas-signup/internal/signup"
	"github.com/khanghh/cas-signup/params"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/khanghh/cas-signup/internal/authclient"

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Client talks to the external auth API. It implements signup.Registrar.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func (c *Client) Register(ctx context.Context, form signup.FormState) (*signup.RegisterResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "authclient.Register", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	data, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}
	registerURL := strings.TrimRight(c.BaseURL, "/") + params.RegisterEndpointPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, registerURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := signup.SubmissionID(ctx); id != "" {
		req.Header.Set(params.RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read register response: %w", err)
	}

	var result registerResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err := json.Unmarshal(body, &result); err != nil || result.Message == "" {
			return nil, &signup.RegisterError{
				Message: fmt.Sprintf("register request bad status: %d", resp.StatusCode),
				Status:  resp.StatusCode,
			}
		}
		return nil, &signup.RegisterError{
			Code:    result.Code,
			Message: result.Message,
			Status:  resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}
	return &signup.RegisterResult{Success: result.Success}, nil
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = params.DefaultAuthTimeout
	}
	return &Client{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}
