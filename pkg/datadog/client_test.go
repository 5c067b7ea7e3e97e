package datadog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/esumerfd/datadog-mcp/pkg/api"
	"github.com/esumerfd/datadog-mcp/pkg/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.Config{
		APIKey:         "test-api-key",
		AppKey:         "test-app-key",
		APIURL:         serverURL,
		TimeoutSeconds: 5,
	})
}

func TestClient_FetchMonitor(t *testing.T) {
	var gotPath, gotMethod, gotAPIKey, gotAppKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAPIKey = r.Header.Get("DD-API-KEY")
		gotAppKey = r.Header.Get("DD-APPLICATION-KEY")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            12345,
			"name":          "CPU High Alert",
			"type":          "metric alert",
			"overall_state": "OK",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	monitor, err := client.FetchMonitor(context.Background(), 12345)
	if err != nil {
		t.Fatalf("FetchMonitor() error = %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", gotMethod)
	}
	if gotPath != "/monitors/12345" {
		t.Errorf("path = %s, want /monitors/12345", gotPath)
	}
	if gotAPIKey != "test-api-key" {
		t.Errorf("DD-API-KEY = %q, want %q", gotAPIKey, "test-api-key")
	}
	if gotAppKey != "test-app-key" {
		t.Errorf("DD-APPLICATION-KEY = %q, want %q", gotAppKey, "test-app-key")
	}
	if monitor["name"] != "CPU High Alert" {
		t.Errorf("monitor name = %v, want %q", monitor["name"], "CPU High Alert")
	}
}

func TestClient_FetchMonitor_StatusError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind ErrorKind
	}{
		{name: "not found", status: http.StatusNotFound, wantKind: ErrorNotFound},
		{name: "forbidden", status: http.StatusForbidden, wantKind: ErrorPermissionDenied},
		{name: "server error", status: http.StatusInternalServerError, wantKind: ErrorRemote},
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: ErrorRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"errors":["boom"]}`, tt.status)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.FetchMonitor(context.Background(), 1)
			if err == nil {
				t.Fatal("FetchMonitor() expected error")
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("error type = %T, want *StatusError", err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.status)
			}
			if statusErr.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", statusErr.Kind(), tt.wantKind)
			}
		})
	}
}

func TestClient_UpdateMonitor_MergesCurrentRecord(t *testing.T) {
	var putBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"id":            42,
				"name":          "old name",
				"message":       "old message",
				"query":         "avg(last_5m):avg:system.cpu.user{*} > 90",
				"type":          "metric alert",
				"tags":          []string{"env:prod"},
				"priority":      3,
				"overall_state": "OK",
			})
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&putBody); err != nil {
				t.Errorf("failed to decode PUT body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{"id": 42, "name": "new name"})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	newName := "new name"
	newPriority := 1
	client := newTestClient(server.URL)
	updated, err := client.UpdateMonitor(context.Background(), 42, api.MonitorPatch{
		Name:     &newName,
		Priority: &newPriority,
	})
	if err != nil {
		t.Fatalf("UpdateMonitor() error = %v", err)
	}

	if updated["name"] != "new name" {
		t.Errorf("updated name = %v, want %q", updated["name"], "new name")
	}

	// Patched fields take the new values
	if putBody["name"] != "new name" {
		t.Errorf("PUT body name = %v, want %q", putBody["name"], "new name")
	}
	if putBody["priority"] != float64(1) {
		t.Errorf("PUT body priority = %v, want 1", putBody["priority"])
	}

	// Unpatched editable fields and the required query/type carry over
	if putBody["message"] != "old message" {
		t.Errorf("PUT body message = %v, want %q", putBody["message"], "old message")
	}
	if putBody["query"] != "avg(last_5m):avg:system.cpu.user{*} > 90" {
		t.Errorf("PUT body query = %v", putBody["query"])
	}
	if putBody["type"] != "metric alert" {
		t.Errorf("PUT body type = %v, want %q", putBody["type"], "metric alert")
	}

	// Non-editable fields are not echoed back
	if _, ok := putBody["overall_state"]; ok {
		t.Error("PUT body should not contain overall_state")
	}
}

func TestClient_UpdateMonitor_ReadLegFails(t *testing.T) {
	putCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			putCalls++
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	name := "x"
	client := newTestClient(server.URL)
	_, err := client.UpdateMonitor(context.Background(), 7, api.MonitorPatch{Name: &name})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden {
		t.Fatalf("error = %v, want 403 StatusError", err)
	}
	if putCalls != 0 {
		t.Errorf("PUT issued %d times after failed read, want 0", putCalls)
	}
}

func TestClient_UpdateMonitor_WriteLegFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"id": 7, "query": "q", "type": "metric alert"})
			return
		}
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer server.Close()

	name := "x"
	client := newTestClient(server.URL)
	_, err := client.UpdateMonitor(context.Background(), 7, api.MonitorPatch{Name: &name})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("error = %v, want 500 StatusError", err)
	}
}

func TestClient_FetchMonitor_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchMonitor(context.Background(), 1)
	if err == nil {
		t.Fatal("FetchMonitor() expected decode error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("decode failure should not be a StatusError, got %v", err)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want ErrorKind
	}{
		{code: 404, want: ErrorNotFound},
		{code: 403, want: ErrorPermissionDenied},
		{code: 400, want: ErrorRemote},
		{code: 401, want: ErrorRemote},
		{code: 429, want: ErrorRemote},
		{code: 500, want: ErrorRemote},
		{code: 502, want: ErrorRemote},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.code); got != tt.want {
			t.Errorf("ClassifyStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
