// Package fetch wraps HTTP requests with shared cookies and 401 handling.
//
// Two entry points exist. APIFetch reloads the host on 401 and returns no
// response. FetchWithAuth broadcasts an "unauthorized" event on 401 and
// fails with ErrUnauthorized, logging every failure it returns.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/credfetch/internal/core/cookies"
	"github.com/sadopc/credfetch/internal/host"
)

// Client issues credentialed requests on behalf of a Host. Configure it
// with the setters before sharing it between goroutines.
type Client struct {
	httpClient *http.Client
	jar        http.CookieJar
	baseURL    *url.URL
	host       host.Host
	logger     *zap.Logger
}

// New creates a client bound to h with an empty cookie jar, no base URL
// and no timeout. A nil h gets a host whose reload does nothing and whose
// events reach no listener.
func New(h host.Host) *Client {
	if h == nil {
		h = host.NewEnv(nil, nil)
	}
	return &Client{
		httpClient: &http.Client{},
		jar:        cookies.New(),
		host:       h,
		logger:     zap.NewNop(),
	}
}

// SetBaseURL sets the origin relative URLs resolve against. It also
// defines what "same-origin" means for credentials. Empty clears it.
func (c *Client) SetBaseURL(raw string) error {
	if raw == "" {
		c.baseURL = nil
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL %q must be absolute", raw)
	}
	c.baseURL = u
	return nil
}

// SetCookieJar replaces the shared cookie jar.
func (c *Client) SetCookieJar(jar http.CookieJar) {
	c.jar = jar
}

// SetTransport sets the round tripper requests go through.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// SetTimeout sets an overall client timeout. Zero, the default, means
// none.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetLogger sets the logger FetchWithAuth reports failures to.
func (c *Client) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// do sends one request. Errors from request construction and the
// transport are returned untouched.
func (c *Client) do(ctx context.Context, rawURL string, opts Options) (*http.Response, error) {
	target, err := c.resolve(rawURL)
	if err != nil {
		return nil, err
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return nil, err
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	hc := *c.httpClient
	hc.Jar = nil
	if c.sendsCredentials(opts.Credentials, req.URL) {
		hc.Jar = c.jar
	}
	return hc.Do(req)
}

func (c *Client) resolve(rawURL string) (string, error) {
	if c.baseURL == nil {
		return rawURL, nil
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

func (c *Client) sendsCredentials(mode Credentials, target *url.URL) bool {
	if c.jar == nil {
		return false
	}
	switch mode {
	case CredentialsInclude:
		return true
	case CredentialsOmit:
		return false
	default:
		return c.sameOrigin(target)
	}
}

func (c *Client) sameOrigin(target *url.URL) bool {
	if c.baseURL == nil || target == nil {
		return false
	}
	return c.baseURL.Scheme == target.Scheme && c.baseURL.Host == target.Host
}

// discard drains a little of the body so the connection can be reused,
// then closes it.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
