package fetch

import (
	"context"
	"net/http"
)

// APIFetch sends a request with cookies always included.
//
// A 401 reply closes the response, reloads the host and yields neither a
// response nor an error. Any other reply is returned as is; the caller
// owns its body. Transport errors are returned unchanged.
func (c *Client) APIFetch(ctx context.Context, rawURL string, opts *Options) (*http.Response, error) {
	resp, err := c.do(ctx, rawURL, apiOptions(opts))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		discard(resp)
		c.host.Reload()
		return nil, nil
	}

	return resp, nil
}
