package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// NetworkErrorMessage is the user-facing message for requests that never got
// a response from the service.
const NetworkErrorMessage = "Network error. Please try again."

const fallbackErrorMessage = "An error occurred"

// Error is the normalized failure of a single request. StatusCode 0 means
// the request never reached or returned from the service; any other value is
// the HTTP status the server answered with.
type Error struct {
	Message    string
	StatusCode int
}

func (x *Error) Error() string {
	return x.Message
}

// AsError extracts the transport error from an error chain.
func AsError(err error) (*Error, bool) {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

func networkError() *Error {
	return &Error{Message: NetworkErrorMessage, StatusCode: 0}
}

// Client issues JSON requests against the service API and normalizes every
// failure into *Error. It carries no retry policy; retries, if any, belong
// to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a transport client rooted at baseURL. The API prefix is
// appended here so callers pass service paths like "/questions".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api",

		// CRUD calls are quick, but RAG query and reindex can take far
		// longer than ordinary requests.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do sends a JSON request and returns the raw response body on 2xx. The
// Content-Type header is always JSON; extra headers may add to it but an
// empty value cannot remove it.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to encode request: %v", err), StatusCode: 0}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, networkError()
	}

	req.Header.Set("Content-Type", "application/json")
	applyHeaders(req, headers)

	return c.send(req)
}

// Upload sends one file as a multipart form POST. Error normalization is the
// same as Do; the multipart writer supplies its own content type.
func (c *Client) Upload(ctx context.Context, path, fieldName, filename string, r io.Reader, headers map[string]string) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(fieldName, filename)
	if err != nil {
		return nil, networkError()
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, networkError()
	}
	if err := mw.Close(); err != nil {
		return nil, networkError()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, networkError()
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())
	applyHeaders(req, headers)

	return c.send(req)
}

func applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		if v == "" {
			continue
		}
		req.Header.Set(k, v)
	}
}

func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError()
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fallbackErrorMessage
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return nil, &Error{Message: msg, StatusCode: resp.StatusCode}
	}

	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, networkError()
	}

	return json.RawMessage(data), nil
}
