// Package remote provides an HTTP client for the daemon's admin API. It is
// consumed by the diagnostics tooling and by integration tests; the response
// Envelope it exposes is also the wire shape the server produces.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/Jeffail/gabs/v2"
	"github.com/apex/log"
	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
)

// Client interacts with the module administration API.
type Client interface {
	// GetModules returns the module collection resource.
	GetModules(ctx context.Context) (*gabs.Container, error)
	// GetModule returns a single module resource by its human-facing ID.
	GetModule(ctx context.Context, moduleID string) (*gabs.Container, error)
	// SetModuleState enables or disables a module. State must be "enabled" or
	// "disabled"; empty performs a no-op update.
	SetModuleState(ctx context.Context, moduleID, state string) (*Envelope, error)
	// GetModuleSettings returns the settings resource for a module.
	GetModuleSettings(ctx context.Context, moduleID string) (*gabs.Container, error)
	// SetModuleSettings updates option values for a module.
	SetModuleSettings(ctx context.Context, moduleID string, values map[string]interface{}) (*Envelope, error)
}

type client struct {
	httpClient    *http.Client
	baseUrl       string
	token         string
	retries       int
	customHeaders map[string]string
}

// ClientOption is a configuration option for the admin API client.
type ClientOption func(c *client)

// New returns a client for the admin API at the given base URL.
func New(base string, opts ...ClientOption) Client {
	c := client{
		baseUrl:    strings.TrimSuffix(base, "/") + "/api",
		httpClient: &http.Client{Timeout: time.Second * 15},
		retries:    3,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// WithCredentials sets the bearer token used to authenticate requests against
// the admin endpoints.
func WithCredentials(token string) ClientOption {
	return func(c *client) {
		c.token = token
	}
}

// WithHttpClient overrides the underlying HTTP client, mostly useful in tests.
func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithCustomHeaders sets additional headers sent with every request, for
// example access-service credentials in front of the daemon.
func WithCustomHeaders(headers map[string]string) ClientOption {
	return func(c *client) {
		c.customHeaders = headers
	}
}

func (c *client) GetModules(ctx context.Context) (*gabs.Container, error) {
	return c.getJSON(ctx, "/modules")
}

func (c *client) GetModule(ctx context.Context, moduleID string) (*gabs.Container, error) {
	return c.getJSON(ctx, "/modules/"+moduleID)
}

func (c *client) SetModuleState(ctx context.Context, moduleID, state string) (*Envelope, error) {
	body := map[string]string{}
	if state != "" {
		body["state"] = state
	}
	return c.postEnvelope(ctx, "/modules/"+moduleID, body)
}

func (c *client) GetModuleSettings(ctx context.Context, moduleID string) (*gabs.Container, error) {
	return c.getJSON(ctx, "/module-settings/"+moduleID)
}

func (c *client) SetModuleSettings(ctx context.Context, moduleID string, values map[string]interface{}) (*Envelope, error) {
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, errors.Wrap(err, "remote: failed to encode option values")
	}
	return c.postEnvelope(ctx, "/module-settings/"+moduleID, map[string]string{
		"jsonEncodedOptionValues": string(encoded),
	})
}

func (c *client) getJSON(ctx context.Context, path string) (*gabs.Container, error) {
	res, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("remote: unexpected response status %d from GET %s", res.StatusCode, path)
	}
	parsed, err := gabs.ParseJSONBuffer(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "remote: failed to parse response from GET %s", path)
	}
	return parsed, nil
}

func (c *client) postEnvelope(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "remote: failed to encode request body")
	}
	res, err := c.request(ctx, http.MethodPost, path, encoded)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("remote: unexpected response status %d from POST %s", res.StatusCode, path)
	}
	return FromClientResponse(res)
}

// request executes a single API call, retrying transient transport failures
// with exponential backoff.
func (c *client) request(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var res *http.Response
	op := func() error {
		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
		}
		for k, v := range c.customHeaders {
			req.Header.Set(k, v)
		}

		r, err := c.httpClient.Do(req)
		if err != nil {
			log.WithError(err).WithField("path", path).Warn("remote: request failed, retrying")
			return err
		}
		res = r
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.retries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, errors.Wrapf(err, "remote: %s %s failed", method, path)
	}
	return res, nil
}
