package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/credfetch/internal/fetch"
)

var errReloaded = errors.New("unauthorized: session reloaded, cookie jar cleared")

// requestFlags are the per-request flags shared by fetch and api.
type requestFlags struct {
	method      string
	headers     []string
	data        string
	credentials string
	baseURL     string
	showHeaders bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.method, "method", "X", "", "HTTP method (default GET)")
	fl.StringArrayVarP(&f.headers, "header", "H", nil, `request header "Key: Value" (repeatable)`)
	fl.StringVarP(&f.data, "data", "d", "", "request body, or @file to read it from a file")
	fl.StringVar(&f.credentials, "credentials", "", "include, same-origin or omit")
	fl.StringVar(&f.baseURL, "base-url", "", "origin relative URLs resolve against")
	fl.BoolVarP(&f.showHeaders, "show-headers", "i", false, "print response headers to stderr (like curl -i)")
}

// options turns the flags into fetch options. Headers stay nil unless -H
// was given, so wrapper defaults still apply.
func (f *requestFlags) options() (*fetch.Options, error) {
	opts := &fetch.Options{Method: strings.ToUpper(f.method)}

	if len(f.headers) > 0 {
		opts.Headers = make(map[string]string, len(f.headers))
		for _, h := range f.headers {
			k, v, err := parseHeader(h)
			if err != nil {
				return nil, err
			}
			opts.Headers[k] = v
		}
	}

	if f.data != "" {
		body := []byte(f.data)
		if path, ok := strings.CutPrefix(f.data, "@"); ok {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading body file: %w", err)
			}
			body = b
		}
		opts.Body = bytes.NewReader(body)
		if opts.Method == "" {
			opts.Method = http.MethodPost
		}
	}

	creds, err := fetch.ParseCredentials(f.credentials)
	if err != nil {
		return nil, err
	}
	opts.Credentials = creds

	return opts, nil
}

func parseHeader(raw string) (string, string, error) {
	k, v, ok := strings.Cut(raw, ":")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("invalid header %q (want \"Key: Value\")", raw)
	}
	return k, strings.TrimSpace(v), nil
}

func newFetchCmd(g *globalFlags) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Send a request with a JSON content type; 401 fails with Unauthorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return &exitCodeError{code: exitUsage, err: err}
			}
			s, err := openSession(g, f.baseURL)
			if err != nil {
				return err
			}

			resp, fetchErr := s.client.FetchWithAuth(cmd.Context(), args[0], opts)
			if fetchErr == nil {
				fetchErr = printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, f.showHeaders)
			}
			if err := s.close(cmd.ErrOrStderr()); err != nil && fetchErr == nil {
				fetchErr = err
			}
			return fetchErr
		},
	}
	f.register(cmd)
	return cmd
}

func newAPICmd(g *globalFlags) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "api <url>",
		Short: "Send a request with cookies always included; 401 clears the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return &exitCodeError{code: exitUsage, err: err}
			}
			s, err := openSession(g, f.baseURL)
			if err != nil {
				return err
			}

			resp, fetchErr := s.client.APIFetch(cmd.Context(), args[0], opts)
			switch {
			case fetchErr != nil:
			case resp == nil:
				fetchErr = &exitCodeError{code: exitReloaded, err: errReloaded}
			default:
				fetchErr = printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, f.showHeaders)
			}
			if err := s.close(cmd.ErrOrStderr()); err != nil && fetchErr == nil {
				fetchErr = err
			}
			return fetchErr
		},
	}
	f.register(cmd)
	return cmd
}
