package fetch

import (
	"fmt"
	"io"
	"strings"
)

// Credentials controls whether the shared cookie jar takes part in a
// request.
type Credentials string

const (
	// CredentialsInclude sends and stores cookies for every target.
	CredentialsInclude Credentials = "include"
	// CredentialsSameOrigin sends and stores cookies only when the target
	// shares the client's base URL origin.
	CredentialsSameOrigin Credentials = "same-origin"
	// CredentialsOmit keeps the jar out of the request entirely.
	CredentialsOmit Credentials = "omit"
)

// ParseCredentials maps a flag or config value onto a Credentials mode.
// The empty string is accepted and means "not set".
func ParseCredentials(s string) (Credentials, error) {
	switch c := Credentials(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CredentialsInclude, CredentialsSameOrigin, CredentialsOmit:
		return c, nil
	default:
		return "", fmt.Errorf("unknown credentials mode %q (want include, same-origin or omit)", s)
	}
}

// Options is the per-request configuration. A zero field means the
// caller did not supply it. A non-nil Headers map counts as supplied even
// when empty.
type Options struct {
	Method      string
	Headers     map[string]string
	Body        io.Reader
	Credentials Credentials
}

// overlay returns base with every field src supplies replacing base's.
// Headers are replaced as a whole, not merged per key.
func overlay(base, src Options) Options {
	out := base
	if src.Method != "" {
		out.Method = src.Method
	}
	if src.Headers != nil {
		out.Headers = src.Headers
	}
	if src.Body != nil {
		out.Body = src.Body
	}
	if src.Credentials != "" {
		out.Credentials = src.Credentials
	}
	return out
}

func deref(opts *Options) Options {
	if opts == nil {
		return Options{}
	}
	return *opts
}

// apiOptions merges for APIFetch: the caller's options first, then
// credential inclusion on top, so callers cannot turn it off.
func apiOptions(opts *Options) Options {
	return overlay(deref(opts), Options{Credentials: CredentialsInclude})
}

// authOptions merges for FetchWithAuth: defaults first, then the caller's
// options on top.
func authOptions(opts *Options) Options {
	defaults := Options{
		Credentials: CredentialsInclude,
		Headers:     map[string]string{"Content-Type": "application/json"},
	}
	return overlay(defaults, deref(opts))
}
