package graphql

import (
	"net/http"
	"regexp"

	"github.com/apex/log"
)

var localhostPort = regexp.MustCompile(`^(https?://localhost):\d+`)

// StripLocalhostPort removes the port suffix from URLs of the form
// "http(s)://localhost:<port>". Any other value passes through unchanged.
// A containerized test client reaches the site on the container port, not
// the mapped host port, so the port must not leak into generated URLs.
func StripLocalhostPort(url string) string {
	return localhostPort.ReplaceAllString(url, "$1")
}

// DevURLAdapter scopes the localhost port-stripping filter to the GraphQL
// data-generation window of publicly exposed GraphQL requests. Outside that
// window, and for every other request, option reads are untouched.
type DevURLAdapter struct {
	state *RequestState

	removeSiteFilter func()
	removeHomeFilter func()
}

// NewDevURLAdapter creates an adapter driven by the given request-state
// service.
func NewDevURLAdapter(state *RequestState) *DevURLAdapter {
	return &DevURLAdapter{state: state}
}

// Attach registers the adapter's begin/end hooks on the engine.
func (a *DevURLAdapter) Attach(e *Engine) {
	e.OnDataGenerationBegin(a.onBegin)
	e.OnDataGenerationEnd(a.onEnd)
	log.Debug("development URL adapter attached")
}

func (a *DevURLAdapter) onBegin(e *Engine, req *http.Request) {
	if !a.state.IsPublicGraphQLRequest(req) {
		return
	}
	a.removeSiteFilter = e.AddOptionFilter(OptionSiteURL, StripLocalhostPort)
	a.removeHomeFilter = e.AddOptionFilter(OptionHomeURL, StripLocalhostPort)
}

func (a *DevURLAdapter) onEnd(e *Engine, req *http.Request) {
	if a.removeSiteFilter != nil {
		a.removeSiteFilter()
		a.removeSiteFilter = nil
	}
	if a.removeHomeFilter != nil {
		a.removeHomeFilter()
		a.removeHomeFilter = nil
	}
}
