package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"
)

var (
	statusOK       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statusRedirect = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	statusError    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dim            = lipgloss.NewStyle().Faint(true)
)

func statusStyle(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return statusOK
	case code >= 300 && code < 400:
		return statusRedirect
	default:
		return statusError
	}
}

// printResponse writes the status line (and headers, if asked) to meta
// and the body to out. JSON bodies are pretty-printed. It closes the body.
func printResponse(out, meta io.Writer, resp *http.Response, showHeaders bool) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	fmt.Fprintf(meta, "%s %s\n",
		statusStyle(resp.StatusCode).Render(resp.Status),
		dim.Render(resp.Proto+"  "+humanize.IBytes(uint64(len(body)))))

	if showHeaders {
		keys := make([]string, 0, len(resp.Header))
		for k := range resp.Header {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(meta, "%s: %s\n", k, strings.Join(resp.Header[k], ", "))
		}
		fmt.Fprintln(meta)
	}

	if len(body) == 0 {
		return nil
	}
	if isJSON(resp.Header.Get("Content-Type"), body) {
		_, err = out.Write(pretty.Pretty(body))
		return err
	}
	if _, err := out.Write(body); err != nil {
		return err
	}
	if body[len(body)-1] != '\n' {
		_, err = io.WriteString(out, "\n")
	}
	return err
}

func isJSON(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return json.Valid(body)
	}
	return false
}
