package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nhle/fleet-dispatch/internal/status"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", 5*time.Second, nil)
}

func TestListLoadsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/loads" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("order"); got != "created_at.desc" {
			t.Errorf("order = %q, want created_at.desc", got)
		}
		if got := r.Header.Get("apikey"); got != "test-key" {
			t.Errorf("apikey header = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		io.WriteString(w, `[{"id":1,"load_id":"L-100","status":"booked"}]`)
	})

	loads, err := c.ListLoads(context.Background())
	if err != nil {
		t.Fatalf("ListLoads: %v", err)
	}
	if len(loads) != 1 || loads[0].LoadID != "L-100" {
		t.Fatalf("loads = %+v", loads)
	}
}

func TestUpdateLoadStatusNormalizesBeforeWrite(t *testing.T) {
	var gotBody map[string]string
	var gotFilter string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		gotFilter = r.URL.Query().Get("load_id")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// A legacy spelling must leave the process canonical.
	if err := c.UpdateLoadStatus(context.Background(), "L-100", "In Transit"); err != nil {
		t.Fatalf("UpdateLoadStatus: %v", err)
	}
	if gotFilter != "eq.L-100" {
		t.Errorf("filter = %q, want eq.L-100", gotFilter)
	}
	if gotBody["status"] != status.InTransit {
		t.Errorf("wrote status %q, want %q", gotBody["status"], status.InTransit)
	}
}

func TestUpdateLoadStatusEmptyID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty load id")
	})
	if err := c.UpdateLoadStatus(context.Background(), "", "booked"); err == nil {
		t.Fatal("expected error for empty load id")
	}
}

func TestMigrateLegacyActive(t *testing.T) {
	var patched bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if got := r.URL.Query().Get("status"); got != "eq.Active" {
				t.Errorf("select filter = %q, want eq.Active", got)
			}
			io.WriteString(w, `[{"load_id":"L-1"},{"load_id":"L-2"}]`)
		case http.MethodPatch:
			patched = true
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["status"] != status.InTransit {
				t.Errorf("migrated to %q, want %q", body["status"], status.InTransit)
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})

	count, err := c.MigrateLegacyActive(context.Background())
	if err != nil {
		t.Fatalf("MigrateLegacyActive: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if !patched {
		t.Fatal("no PATCH was issued")
	}
}

func TestMigrateLegacyActiveNothingToDo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			t.Error("PATCH issued with no legacy rows")
		}
		io.WriteString(w, `[]`)
	})

	count, err := c.MigrateLegacyActive(context.Background())
	if err != nil {
		t.Fatalf("MigrateLegacyActive: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestRetryOnRateLimit(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `[]`)
	})

	if _, err := c.ListLoads(context.Background()); err != nil {
		t.Fatalf("ListLoads after retry: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestUnauthorizedReturnsAuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ListLoads(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Fatalf("IsAuthError = false for %v", err)
	}
}

func TestAPIErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"invalid filter"}`)
	})

	_, err := c.ListLoads(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "invalid filter"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not mention %q", err, want)
	}
}
