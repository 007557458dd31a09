package fetch

import (
	"strings"
	"testing"
)

func TestAPIOptions_ForcesCredentials(t *testing.T) {
	body := strings.NewReader("x")
	got := apiOptions(&Options{
		Method:      "POST",
		Headers:     map[string]string{"X-Trace": "1"},
		Body:        body,
		Credentials: CredentialsOmit,
	})

	if got.Credentials != CredentialsInclude {
		t.Fatalf("Credentials = %q, want include", got.Credentials)
	}
	if got.Method != "POST" || got.Body != body || got.Headers["X-Trace"] != "1" {
		t.Fatalf("caller fields not kept: %#v", got)
	}
	if _, ok := got.Headers["Content-Type"]; ok {
		t.Fatal("APIFetch must not add a default Content-Type")
	}
}

func TestAPIOptions_Nil(t *testing.T) {
	got := apiOptions(nil)
	if got.Credentials != CredentialsInclude {
		t.Fatalf("Credentials = %q, want include", got.Credentials)
	}
	if got.Headers != nil || got.Method != "" || got.Body != nil {
		t.Fatalf("expected only credentials to be set, got %#v", got)
	}
}

func TestAuthOptions_Defaults(t *testing.T) {
	got := authOptions(nil)
	if got.Credentials != CredentialsInclude {
		t.Fatalf("Credentials = %q, want include", got.Credentials)
	}
	if got.Headers["Content-Type"] != "application/json" || len(got.Headers) != 1 {
		t.Fatalf("Headers = %v, want only Content-Type: application/json", got.Headers)
	}
}

func TestAuthOptions_CallerHeadersReplaceDefaults(t *testing.T) {
	got := authOptions(&Options{Headers: map[string]string{"Accept": "text/plain"}})
	if _, ok := got.Headers["Content-Type"]; ok {
		t.Fatalf("caller headers should replace defaults, got %v", got.Headers)
	}
	if got.Headers["Accept"] != "text/plain" {
		t.Fatalf("Accept = %q, want text/plain", got.Headers["Accept"])
	}

	empty := authOptions(&Options{Headers: map[string]string{}})
	if len(empty.Headers) != 0 {
		t.Fatalf("an empty caller map still replaces defaults, got %v", empty.Headers)
	}
}

func TestAuthOptions_CallerCredentialsWin(t *testing.T) {
	got := authOptions(&Options{Credentials: CredentialsOmit})
	if got.Credentials != CredentialsOmit {
		t.Fatalf("Credentials = %q, want omit", got.Credentials)
	}
	if got.Headers["Content-Type"] != "application/json" {
		t.Fatal("default headers should stay when caller supplies none")
	}
}

func TestAuthOptions_DefaultsNotShared(t *testing.T) {
	a := authOptions(nil)
	a.Headers["Content-Type"] = "text/plain"
	b := authOptions(nil)
	if b.Headers["Content-Type"] != "application/json" {
		t.Fatal("mutating one call's defaults leaked into the next")
	}
}

func TestParseCredentials(t *testing.T) {
	for in, want := range map[string]Credentials{
		"":            "",
		"include":     CredentialsInclude,
		" Omit ":      CredentialsOmit,
		"same-origin": CredentialsSameOrigin,
	} {
		got, err := ParseCredentials(in)
		if err != nil {
			t.Fatalf("ParseCredentials(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseCredentials(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseCredentials("always"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
