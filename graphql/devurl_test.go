package graphql

import (
	"net/http/httptest"
	"testing"
)

func TestStripLocalhostPort(t *testing.T) {
	cases := map[string]string{
		"https://localhost:54023":          "https://localhost",
		"http://localhost:8080":            "http://localhost",
		"http://localhost:8080/graphql":    "http://localhost/graphql",
		"https://localhost":                "https://localhost",
		"https://example.com:8443":         "https://example.com:8443",
		"http://sublocalhost:8080":         "http://sublocalhost:8080",
		"ftp://localhost:21":               "ftp://localhost:21",
		"not a url":                        "not a url",
		"":                                 "",
		"https://localhost:54023/wp-admin": "https://localhost/wp-admin",
	}
	for input, expected := range cases {
		if got := StripLocalhostPort(input); got != expected {
			t.Errorf("StripLocalhostPort(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestDevURLAdapter_FiltersScopedToGenerationWindow(t *testing.T) {
	engine := NewEngine()
	adapter := NewDevURLAdapter(NewRequestState("/graphql"))
	adapter.Attach(engine)

	req := httptest.NewRequest("POST", "http://localhost:8080/graphql", nil)

	// Outside the generation window nothing is filtered.
	if got := engine.Option(OptionSiteURL, "https://localhost:54023"); got != "https://localhost:54023" {
		t.Fatalf("expected option to pass through outside generation, got %q", got)
	}

	engine.GenerateData(req, func(e *Engine) {
		if got := e.Option(OptionSiteURL, "https://localhost:54023"); got != "https://localhost" {
			t.Errorf("expected siteurl to be stripped during generation, got %q", got)
		}
		if got := e.Option(OptionHomeURL, "http://localhost:8080"); got != "http://localhost" {
			t.Errorf("expected home to be stripped during generation, got %q", got)
		}
		if got := e.Option(OptionHomeURL, "https://example.com"); got != "https://example.com" {
			t.Errorf("expected non-localhost URL to pass through, got %q", got)
		}
	})

	// The filters are deregistered once generation ends.
	if got := engine.Option(OptionSiteURL, "https://localhost:54023"); got != "https://localhost:54023" {
		t.Fatalf("expected filter removal after generation, got %q", got)
	}
}

func TestDevURLAdapter_IgnoresNonGraphQLRequests(t *testing.T) {
	engine := NewEngine()
	adapter := NewDevURLAdapter(NewRequestState("/graphql"))
	adapter.Attach(engine)

	req := httptest.NewRequest("GET", "http://localhost:8080/wp-admin", nil)
	engine.GenerateData(req, func(e *Engine) {
		if got := e.Option(OptionSiteURL, "https://localhost:54023"); got != "https://localhost:54023" {
			t.Errorf("expected no filtering for non-GraphQL request, got %q", got)
		}
	})
}

func TestRequestState_IsPublicGraphQLRequest(t *testing.T) {
	state := NewRequestState("/graphql")

	if !state.IsPublicGraphQLRequest(httptest.NewRequest("POST", "http://site.test/graphql", nil)) {
		t.Error("expected /graphql to be detected as a GraphQL request")
	}
	if !state.IsPublicGraphQLRequest(httptest.NewRequest("POST", "http://site.test/graphql/", nil)) {
		t.Error("expected trailing slash to be tolerated")
	}
	if state.IsPublicGraphQLRequest(httptest.NewRequest("GET", "http://site.test/graphiql", nil)) {
		t.Error("expected /graphiql not to be detected as a GraphQL request")
	}
	if state.IsPublicGraphQLRequest(nil) {
		t.Error("expected nil request to be rejected")
	}
}
