package graphql

import (
	"net/http"
	"strings"
)

// RequestState answers whether the request currently being processed targets
// the host's publicly exposed GraphQL API, as opposed to an admin or internal
// endpoint.
type RequestState struct {
	endpoint string
}

// NewRequestState creates a request-state service for the given public
// GraphQL endpoint path.
func NewRequestState(endpoint string) *RequestState {
	if endpoint == "" {
		endpoint = "/graphql"
	}
	return &RequestState{endpoint: strings.TrimSuffix(endpoint, "/")}
}

// IsPublicGraphQLRequest reports whether req targets the public GraphQL API.
func (r *RequestState) IsPublicGraphQLRequest(req *http.Request) bool {
	if req == nil || req.URL == nil {
		return false
	}
	path := strings.TrimSuffix(req.URL.Path, "/")
	return path == r.endpoint
}
