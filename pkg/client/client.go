// Package client talks to the SimHire REST API. Every call returns the server's
// envelope; failures additionally return an *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// Envelope is the normalized response of every call.
type Envelope[T any] struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Data      T        `json:"data"`
	Errors    []string `json:"errors,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// Empty is the payload of calls that return no data.
type Empty = struct{}

// Client is safe for concurrent use. It never retries and sets no timeouts of its own.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

// New returns a client for baseURL, e.g. "http://localhost:8080/api". A nil session
// starts signed out and a nil httpClient uses http.DefaultClient.
func New(baseURL string, session *Session, httpClient *http.Client) *Client {
	if session == nil {
		session = &Session{}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		session:    session,
		httpClient: httpClient,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	public bool // sent without the bearer token
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, r request) (*rawResponse, *APIError) {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("encode request: %v", err), Code: "invalid_request", Kind: KindValidation}
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("create request: %v", err), Code: "invalid_request", Kind: KindValidation}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !r.public {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("network error: %v", err), Code: codeOf(0), Kind: KindNetwork}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("network error: read response: %v", err), Code: codeOf(0), Kind: KindNetwork}
	}
	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: payload}, nil
}

// decodeEnvelope never fails: a body that is not an envelope becomes a synthesized
// failure envelope and ok is false.
func decodeEnvelope[T any](body []byte) (env *Envelope[T], ok bool) {
	env = &Envelope[T]{}
	if len(bytes.TrimSpace(body)) == 0 {
		return &Envelope[T]{Message: "invalid response from server: empty body"}, false
	}
	if err := json.Unmarshal(body, env); err != nil {
		return &Envelope[T]{Message: "invalid response from server: " + err.Error()}, false
	}
	return env, true
}

// serverMessage is empty unless the server sent an envelope, so the status text is used instead.
func serverMessage[T any](env *Envelope[T], ok bool) string {
	if !ok {
		return ""
	}
	return env.Message
}

func call[T any](ctx context.Context, c *Client, r request) (*Envelope[T], error) {
	resp, apiErr := c.send(ctx, r)
	if apiErr != nil {
		return &Envelope[T]{Message: apiErr.Message}, apiErr
	}

	env, ok := decodeEnvelope[T](resp.body)
	if resp.status < 200 || resp.status > 299 {
		env.Success = false
		return env, newAPIError(resp.status, serverMessage(env, ok), env.Errors, env.RequestID)
	}
	if !ok {
		return env, &APIError{Status: resp.status, Message: env.Message, Code: "invalid_response", Kind: KindNetwork}
	}
	if !env.Success {
		return env, newAPIError(resp.status, env.Message, env.Errors, env.RequestID)
	}
	return env, nil
}

// download fetches an attachment. Errors are read from the envelope the server sends instead.
func (c *Client) download(ctx context.Context, r request) ([]byte, string, error) {
	resp, apiErr := c.send(ctx, r)
	if apiErr != nil {
		return nil, "", apiErr
	}
	if resp.status < 200 || resp.status > 299 {
		env, ok := decodeEnvelope[Empty](resp.body)
		return nil, "", newAPIError(resp.status, serverMessage(env, ok), env.Errors, env.RequestID)
	}

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return resp.body, filename, nil
}
