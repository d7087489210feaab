package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calcform/pkg/server"
	"github.com/goliatone/go-calcform/pkg/templates"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := server.New(templates.Default(), server.WithTitle("Tools"))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func read(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestNew_RequiresLibrary(t *testing.T) {
	if _, err := server.New(nil); err != server.ErrLibraryMissing {
		t.Fatalf("expected ErrLibraryMissing, got %v", err)
	}
}

func TestIndexAndForm(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Get(ts.URL + "/forms")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	body := read(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `<a href="/forms/tip">Tip calculator</a>`) {
		t.Fatalf("unexpected index (%d):\n%s", resp.StatusCode, body)
	}

	resp, err = http.Get(ts.URL + "/forms/tip")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body = read(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	for _, fragment := range []string{"<!doctype html>", `action="/forms/tip"`, `name="amount"`} {
		if !strings.Contains(body, fragment) {
			t.Errorf("expected form page to contain %q", fragment)
		}
	}

	resp, err = http.Get(ts.URL + "/forms/nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	read(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func getWithAccept(t *testing.T, target, accept string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Accept", accept)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", target, err)
	}
	return resp
}

func TestForm_NegotiatesSnapshot(t *testing.T) {
	ts := newServer(t)

	resp := getWithAccept(t, ts.URL+"/forms/tip", "application/json")
	body := read(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(body, `"state": "idle"`) || !strings.Contains(body, `"title": "Tip calculator"`) {
		t.Fatalf("expected snapshot body:\n%s", body)
	}

	resp = getWithAccept(t, ts.URL+"/forms/tip", "text/html,application/xhtml+xml,*/*;q=0.8")
	body = read(t, resp)
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") || !strings.Contains(body, "<!doctype html>") {
		t.Fatalf("expected HTML page, got %q", resp.Header.Get("Content-Type"))
	}

	resp = getWithAccept(t, ts.URL+"/forms/tip", "image/png")
	read(t, resp)
	if resp.StatusCode != http.StatusNotAcceptable {
		t.Fatalf("expected 406, got %d", resp.StatusCode)
	}
}

func TestPostForm_InvalidRerenders(t *testing.T) {
	ts := newServer(t)

	resp, err := http.PostForm(ts.URL+"/forms/tip", url.Values{"amount": {""}, "percent": {"15"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := read(t, resp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Bill amount is required") {
		t.Fatalf("expected error text in page:\n%s", body)
	}
}

func TestPostForm_AcceptedReturnsJSON(t *testing.T) {
	ts := newServer(t)

	resp, err := http.PostForm(ts.URL+"/forms/tip", url.Values{"amount": {"10"}, "percent": {"15"}, "people": {"2"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := read(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"isValid": true,
		"errors":  map[string]any{},
		"data":    map[string]any{"amount": "10", "percent": "15", "people": "2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestPostForm_ResetRestoresDefaults(t *testing.T) {
	ts := newServer(t)

	resp, err := http.PostForm(ts.URL+"/forms/tip", url.Values{"amount": {"99"}, "percent": {"40"}, "_action": {"reset"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := read(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `name="percent" class="calcform-input" value="15"`) || strings.Contains(body, `value="99"`) {
		t.Fatalf("expected defaults after reset:\n%s", body)
	}
}

func TestPostJSON(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Post(ts.URL+"/forms/tip", "application/json", strings.NewReader(`{"amount": 20}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := read(t, resp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var rejected map[string]any
	if err := json.Unmarshal([]byte(body), &rejected); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"isValid": false,
		"errors":  map[string]any{"percent": []any{"Tip % is required"}},
	}
	if diff := cmp.Diff(want, rejected); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}

	resp, err = http.Post(ts.URL+"/forms/tip", "application/json", strings.NewReader(`{"amount": 20, "percent": 10}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	read(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/forms/tip", "application/json", strings.NewReader(`{`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	read(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Get(ts.URL + "/openapi.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := read(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Fatalf("unexpected version %q", doc.OpenAPI)
	}
	if _, ok := doc.Paths["/forms/bmi"]["post"]; !ok {
		t.Fatalf("expected POST /forms/bmi, got %v", doc.Paths)
	}
}
