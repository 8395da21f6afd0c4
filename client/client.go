// Package client is a typed HTTP client for the treatment tracker API.
// Every failure, transport or server-reported, is normalized into a single
// *APIError shape so callers never branch on raw HTTP details.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/healthtrack/treatment-tracker/model"
)

// ConnectivityMessage is the user-facing message for transport failures
// where no response reached the service.
const ConnectivityMessage = "Unable to reach the treatment service. Check that the backend is running."

// APIError is the one error shape every client call returns. Fields is only
// populated for validation failures, where the server enumerates every
// violated field.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, "; "))
	}
	return e.Message
}

// IsNotFound reports whether the error is a not-found response from the
// service.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client wraps the four record service operations. Calls are single
// request/response; the client never retries or batches.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a client for the service at baseURL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
	}
}

// errorBody mirrors the service's failure payload.
type errorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

func (c *Client) do(method, path string, reqBody, resBody interface{}) error {
	var body *bytes.Buffer
	if reqBody != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(reqBody); err != nil {
			return &APIError{Message: fmt.Sprintf("failed to encode request: %s", err)}
		}
	}

	var httpReq *http.Request
	var err error
	if body != nil {
		httpReq, err = http.NewRequest(method, c.baseURL+path, body)
	} else {
		httpReq, err = http.NewRequest(method, c.baseURL+path, nil)
	}
	if err != nil {
		return &APIError{Message: fmt.Sprintf("failed to build request: %s", err)}
	}
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpRes, err := c.httpc.Do(httpReq)
	if err != nil {
		return &APIError{Message: ConnectivityMessage}
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode >= 400 {
		var e errorBody
		if err := json.NewDecoder(httpRes.Body).Decode(&e); err != nil || e.Error == "" {
			return &APIError{
				StatusCode: httpRes.StatusCode,
				Message:    fmt.Sprintf("request failed with status %d", httpRes.StatusCode),
			}
		}
		return &APIError{
			StatusCode: httpRes.StatusCode,
			Message:    e.Error,
			Fields:     e.Errors,
		}
	}

	if resBody != nil {
		if err := json.NewDecoder(httpRes.Body).Decode(resBody); err != nil {
			return &APIError{
				StatusCode: httpRes.StatusCode,
				Message:    fmt.Sprintf("failed to decode response: %s", err),
			}
		}
	}
	return nil
}

// Create validates and persists a new treatment record, returning the
// persisted record with its assigned id and created_at.
func (c *Client) Create(in model.TreatmentInput) (*model.Treatment, error) {
	var created model.Treatment
	if err := c.do(http.MethodPost, "/treatments", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List fetches every treatment record, most recent treatment date first.
func (c *Client) List() ([]model.Treatment, error) {
	var treatments []model.Treatment
	if err := c.do(http.MethodGet, "/treatments", nil, &treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

// Delete removes the record with the given id. Returns a not-found APIError
// when no such record exists.
func (c *Client) Delete(id uint) error {
	path := fmt.Sprintf("/treatments/%d", id)
	return c.do(http.MethodDelete, path, nil, nil)
}

// Health checks service liveness.
func (c *Client) Health() error {
	return c.do(http.MethodGet, "/health", nil, nil)
}
