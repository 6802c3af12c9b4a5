package router

import (
	"net/http"
	"testing"
)

func TestGetModules_ListsAll(t *testing.T) {
	h := newTestHarness(t)

	w := h.request(t, http.MethodGet, "/api/modules", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var res ModuleListResponse
	decodeJSON(t, w, &res)
	if len(res.Data) != h.registry.Len() {
		t.Fatalf("expected %d modules, got %d", h.registry.Len(), len(res.Data))
	}

	for _, item := range res.Data {
		if item.ID == "" || item.Module == "" {
			t.Fatalf("module item missing identity fields: %#v", item)
		}
		if item.Links.Self == "" || item.Links.Collection == "" || item.Links.Settings == "" {
			t.Fatalf("module item missing links: %#v", item.Links)
		}
	}
}

func TestGetModule_NotFound(t *testing.T) {
	h := newTestHarness(t)

	w := h.request(t, http.MethodGet, "/api/modules/does-not-exist", "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPostModule_RequiresAuthorization(t *testing.T) {
	h := newTestHarness(t)

	w := h.request(t, http.MethodPost, "/api/modules/clients-graphiql", `{"state":"disabled"}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", w.Code)
	}

	// The module state must be untouched.
	if !h.moduleItem(t, "clients-graphiql").IsEnabled {
		t.Fatal("unauthorized request must not mutate module state")
	}
}

func TestPostModule_InvalidStateRejected(t *testing.T) {
	h := newTestHarness(t)

	w := h.request(t, http.MethodPost, "/api/modules/clients-graphiql", `{"state":"sideways"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var detail ErrorDetail
	decodeJSON(t, w, &detail)
	if detail.Code != "invalid_parameter" {
		t.Fatalf("expected invalid_parameter code, got %q", detail.Code)
	}
	if detail.Data["parameter"] != "state" || detail.Data["value"] != "sideways" {
		t.Fatalf("expected offending parameter and value in detail, got %#v", detail.Data)
	}

	// Rejection happens before any state mutation.
	if !h.moduleItem(t, "clients-graphiql").IsEnabled {
		t.Fatal("invalid state must not mutate module state")
	}
	if h.scheduler.Pending() {
		t.Fatal("invalid state must not enqueue a rewrite flush")
	}
}

func TestPostModule_TogglesExactlyOne(t *testing.T) {
	h := newTestHarness(t)

	w := h.request(t, http.MethodPost, "/api/modules/clients-graphiql", `{"state":"disabled"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeJSON(t, w, &envelope)
	if envelope.Status != "success" {
		t.Fatalf("expected success envelope, got %q: %s", envelope.Status, envelope.Message)
	}

	// Toggling a module can change which URLs are valid. Check before issuing
	// another request, which would consume the pending flush.
	if !h.scheduler.Pending() {
		t.Fatal("expected a rewrite flush to be enqueued")
	}

	// A subsequent GET reflects the new state.
	if h.moduleItem(t, "clients-graphiql").IsEnabled {
		t.Fatal("expected module to be disabled after update")
	}
	// Other modules are untouched.
	if !h.moduleItem(t, "clients-interactive-schema").IsEnabled {
		t.Fatal("expected unrelated module to keep its state")
	}
}

func TestPostModule_NoStateIsNoOp(t *testing.T) {
	h := newTestHarness(t)

	w := h.request(t, http.MethodPost, "/api/modules/clients-graphiql", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeJSON(t, w, &envelope)
	if envelope.Status != "success" {
		t.Fatalf("expected success envelope for no-op update, got %q", envelope.Status)
	}
	if !h.moduleItem(t, "clients-graphiql").IsEnabled {
		t.Fatal("no-op update must not mutate module state")
	}
	if h.scheduler.Pending() {
		t.Fatal("no-op update must not enqueue a rewrite flush")
	}
}

func TestGetModule_CapabilityFlags(t *testing.T) {
	h := newTestHarness(t)

	// single-endpoint is enabled by default but cannot be disabled.
	item := h.moduleItem(t, "endpoint-single-endpoint")
	if !item.IsEnabled || item.CanBeDisabled {
		t.Fatalf("expected enabled module without disable capability, got %#v", item)
	}

	// Disabling the dependency removes graphiql's enable capability once it
	// itself is disabled.
	if w := h.request(t, http.MethodPost, "/api/modules/clients-graphiql", `{"state":"disabled"}`, true); w.Code != http.StatusOK {
		t.Fatalf("failed to disable graphiql: %d", w.Code)
	}
	item = h.moduleItem(t, "clients-graphiql")
	if !item.CanBeEnabled {
		t.Fatal("expected disabled module with satisfied dependencies to be enablable")
	}
}
