// Package fetch retrieves build descriptors through a hosted repository
// "file contents" API.
package fetch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/harness/pomwatch/util/common/errors"
)

const acceptHeader = "application/vnd.github+json"

// Fetcher returns the decoded descriptor bytes behind url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options tunes the underlying transport. The zero value performs a single
// attempt without timeout.
type Options struct {
	Timeout    time.Duration
	Retries    int
	HTTPClient *http.Client
}

// Client is a Fetcher backed by a retryable HTTP client.
// Modifiers are applied to every request before it is sent.
type Client struct {
	modifiers []Modifier
	client    *retryablehttp.Client
}

// NewClient creates a Client with basic authentication and the contents API
// accept header. Extra modifiers run after those.
func NewClient(username, password string, opts Options, modifiers ...Modifier) *Client {
	rc := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.RetryMax = opts.Retries
	if rc.RetryMax < 0 {
		rc.RetryMax = 0
	}
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = leveledLogger{}
	// hand the final response back so the status can be classified here
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	all := []Modifier{
		NewBasicAuthorizer(username, password),
		NewHeaderModifier("Accept", acceptHeader),
	}
	return &Client{
		modifiers: append(all, modifiers...),
		client:    rc,
	}
}

// contents is the subset of the file contents envelope that is used.
type contents struct {
	Content  *string `json:"content"`
	Encoding string  `json:"encoding"`
}

// Fetch performs one GET and decodes the base64 content field.
// Every failure comes back as *errors.FetchError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError(url, errors.ReasonFetch, err)
	}
	for _, m := range c.modifiers {
		if err := m.Modify(req.Request); err != nil {
			return nil, errors.NewFetchError(url, errors.ReasonFetch, err)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(url, errors.ReasonFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.NewStatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetchError(url, errors.ReasonFetch, err)
	}
	raw, err := decodeContents(body)
	if err != nil {
		return nil, errors.NewFetchError(url, errors.ReasonDecode, err)
	}
	return raw, nil
}

func decodeContents(body []byte) ([]byte, error) {
	var env contents
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse contents envelope: %w", err)
	}
	if env.Content == nil {
		return nil, fmt.Errorf("contents envelope has no content field")
	}
	if env.Encoding != "" && env.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported content encoding %q", env.Encoding)
	}
	// the API wraps the payload every 60 characters
	payload := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, *env.Content)
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return raw, nil
}

// leveledLogger routes retryablehttp logging into zerolog.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) {
	log.Error().Fields(kv).Msg(msg)
}

func (leveledLogger) Info(msg string, kv ...interface{}) {
	log.Debug().Fields(kv).Msg(msg)
}

func (leveledLogger) Debug(msg string, kv ...interface{}) {
	log.Trace().Fields(kv).Msg(msg)
}

func (leveledLogger) Warn(msg string, kv ...interface{}) {
	log.Warn().Fields(kv).Msg(msg)
}
