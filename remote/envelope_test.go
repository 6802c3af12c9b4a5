package remote

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func responseWithBody(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewEnvelope(t *testing.T) {
	e := NewEnvelope()
	if e.Status != "" || e.Message != "" {
		t.Fatalf("expected empty status and message, got %q/%q", e.Status, e.Message)
	}
	if e.Data == nil || len(e.Data) != 0 {
		t.Fatalf("expected initialized empty data object, got %#v", e.Data)
	}
}

func TestFromClientResponse(t *testing.T) {
	e, err := FromClientResponse(responseWithBody(`{"status":"error","message":"x"}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if e.Status != StatusError {
		t.Fatalf("expected error status, got %q", e.Status)
	}
	if e.Message != "x" {
		t.Fatalf("expected message x, got %q", e.Message)
	}
	if e.Data == nil || len(e.Data) != 0 {
		t.Fatalf("expected empty data object when data is absent, got %#v", e.Data)
	}
	if e.IsSuccess() {
		t.Fatal("error envelope must not report success")
	}
}

func TestFromClientResponse_WithData(t *testing.T) {
	e, err := FromClientResponse(responseWithBody(`{"status":"success","data":{"module":"clients/graphiql"}}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !e.IsSuccess() {
		t.Fatal("expected success envelope")
	}
	if e.Message != "" {
		t.Fatalf("expected message to default to empty, got %q", e.Message)
	}
	if e.Data["module"] != "clients/graphiql" {
		t.Fatalf("expected data to round trip, got %#v", e.Data)
	}
}

func TestFromClientResponse_InvalidBody(t *testing.T) {
	if _, err := FromClientResponse(responseWithBody(`not json`)); err == nil {
		t.Fatal("expected parse failure for a non-JSON body")
	}
}
