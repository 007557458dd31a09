package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/sadopc/credfetch/internal/host"
)

// ErrUnauthorized is returned by FetchWithAuth for a 401 reply.
var ErrUnauthorized = errors.New("Unauthorized")

// FetchWithAuth sends a request with cookies included and a JSON
// Content-Type unless opts says otherwise. Caller Headers replace the
// default header set.
//
// A 401 reply closes the response, dispatches host.EventUnauthorized and
// fails with ErrUnauthorized. Every failure, that one included, is logged
// once and returned as the same error value.
func (c *Client) FetchWithAuth(ctx context.Context, rawURL string, opts *Options) (*http.Response, error) {
	merged := authOptions(opts)

	resp, err := c.do(ctx, rawURL, merged)
	if err == nil && resp.StatusCode == http.StatusUnauthorized {
		discard(resp)
		c.host.Dispatch(host.EventUnauthorized)
		resp, err = nil, ErrUnauthorized
	}
	if err != nil {
		c.logger.Error("Fetch error",
			zap.Error(err),
			zap.String("method", methodOf(merged)),
			zap.String("url", redact(rawURL)))
		return nil, err
	}

	return resp, nil
}

// redact masks the password in a URL's userinfo.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Redacted()
}

func methodOf(opts Options) string {
	if opts.Method == "" {
		return http.MethodGet
	}
	return opts.Method
}
