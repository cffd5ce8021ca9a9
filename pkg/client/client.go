package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/integrail/namegen-client/pkg/client/dto"
	"github.com/integrail/namegen-client/pkg/logging"
)

const generatePath = "/api/generate"

// Client fetches generated names from the backend.
type Client interface {
	Generate(ctx context.Context, count int) ([]string, error)
}

type namesClient struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	timeout    time.Duration
	log        logrus.FieldLogger
}

type Option func(c *namesClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *namesClient) {
		c.httpClient = httpClient
	}
}

// WithHeaders adds headers to every request, e.g. auth for a proxied backend.
func WithHeaders(headers map[string]string) Option {
	return func(c *namesClient) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithTimeout limits the whole request. Zero waits for the transport indefinitely.
func WithTimeout(timeout time.Duration) Option {
	return func(c *namesClient) {
		c.timeout = timeout
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *namesClient) {
		c.log = log
	}
}

// NewClient returns a Client for the backend at baseURL. Trailing slashes are ignored;
// an empty baseURL yields relative request URLs.
func NewClient(baseURL string, opts ...Option) Client {
	c := &namesClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		headers:    map[string]string{},
		log:        logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (o *namesClient) endpoint(count int) string {
	query := url.Values{"count": []string{strconv.Itoa(count)}}
	return fmt.Sprintf("%s%s?%s", o.baseURL, generatePath, query.Encode())
}

func (o *namesClient) Generate(ctx context.Context, count int) ([]string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	endpoint := o.endpoint(count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to init request for %q", endpoint)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request %d names", count)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body (status %d)", resp.StatusCode)
	}
	o.log.WithFields(logrus.Fields{
		"url":      endpoint,
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(started),
	}).Debug("generate request finished")

	contentType := resp.Header.Get("Content-Type")
	isJSON := strings.Contains(contentType, "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// the error body is optional and may not be JSON at all
		var errResp dto.ErrorResponse
		if isJSON {
			_ = json.Unmarshal(body, &errResp)
		}
		return nil, newRequestFailed(resp.StatusCode, errResp.Error)
	}

	if !isJSON {
		return nil, errors.Wrapf(ErrBadResponse, "unexpected content type %q", contentType)
	}
	var genResp dto.GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, errors.Wrapf(ErrBadResponse, "failed to unmarshal response: %v", err)
	}
	if genResp.Names == nil {
		return nil, errors.Wrapf(ErrBadResponse, "response has no names: %s", string(body))
	}
	return genResp.Names, nil
}
