package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fwojciec/promptsmith"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ promptsmith.Generator = (*Client)(nil)

// Client implements [promptsmith.Generator] for the Gemini API. It holds
// no credential; the key is supplied per call.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the models endpoint. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithModel sets the model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates a new Gemini [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Model returns the model ID requests are sent to.
func (c *Client) Model() string { return c.model }

// Generate sends one generateContent request and returns the text of the
// first part of the first candidate. It makes exactly one attempt.
func (c *Client) Generate(ctx context.Context, req promptsmith.GenerationRequest, credential string) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if credential == "" {
		return "", promptsmith.ErrNoCredential
	}

	body, err := json.Marshal(buildRequestBody(req))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(c.model) + ":generateContent?key=" + url.QueryEscape(credential)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// The URL carries the key; drop it from the wrapped error.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", &promptsmith.Error{Kind: promptsmith.KindNetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", parseHTTPError(resp)
	}
	return parseReply(resp.Body)
}

func buildRequestBody(req promptsmith.GenerationRequest) apiRequest {
	return apiRequest{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		},
		Contents: []*genai.Content{{
			Parts: []*genai.Part{{Text: req.UserMessage()}},
		}},
		GenerationConfig: apiGenerationConfig{
			MaxOutputTokens: req.MaxOutputTokens,
			Temperature:     req.Temperature,
		},
	}
}

func parseReply(r io.Reader) (string, error) {
	var reply genai.GenerateContentResponse
	if err := json.NewDecoder(r).Decode(&reply); err != nil {
		return "", &promptsmith.Error{Kind: promptsmith.KindEmptyReply, Err: err}
	}
	if len(reply.Candidates) == 0 {
		return "", &promptsmith.Error{Kind: promptsmith.KindEmptyReply}
	}
	content := reply.Candidates[0].Content
	// An empty text part is still a reply; the parser rejects it.
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", &promptsmith.Error{Kind: promptsmith.KindEmptyReply}
	}
	return content.Parts[0].Text, nil
}

func parseHTTPError(resp *http.Response) error {
	e := &promptsmith.Error{Status: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusBadRequest:
		e.Kind = promptsmith.KindBadRequest
	case http.StatusForbidden:
		e.Kind = promptsmith.KindAuthFailure
	case http.StatusTooManyRequests:
		e.Kind = promptsmith.KindRateLimited
	default:
		e.Kind = promptsmith.KindUnknownServerError
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e.Err = err
		return e
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
		e.Detail = apiErr.Error.Message
	}
	return e
}
