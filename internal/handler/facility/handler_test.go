package facility

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carelane/carelane/backend/internal/config"
	facilityservice "github.com/carelane/carelane/backend/internal/service/facility"
)

type upstream struct {
	srv   *httptest.Server
	query url.Values
	calls int
}

func newUpstream(t *testing.T, body map[string]any) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls++
		u.query = r.URL.Query()
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func setupRouter(apiKey, baseURL string) *chi.Mux {
	svc := facilityservice.NewService(config.PlacesConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestFacilitiesMissingCoordinates(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK"})
	r := setupRouter("test-key", up.srv.URL)

	for _, path := range []string{"/facilities", "/facilities?lat=1", "/facilities?lng=2"} {
		resp := get(r, path)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.Code)
		}
		var body map[string]string
		json.Unmarshal(resp.Body.Bytes(), &body)
		if body["error"] != "lat and lng are required" {
			t.Fatalf("%s: unexpected error body: %+v", path, body)
		}
	}
	if up.calls != 0 {
		t.Fatalf("missing coordinates must make no upstream call, got %d", up.calls)
	}
}

func TestFacilitiesClinicMapsToDoctor(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK", "results": []any{}})
	r := setupRouter("test-key", up.srv.URL)

	resp := get(r, "/facilities?type=clinic&lat=1&lng=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := up.query.Get("type"); got != "doctor" {
		t.Fatalf("expected upstream category doctor, got %q", got)
	}
	if up.query.Has("keyword") {
		t.Fatalf("clinic must not send a keyword, got %q", up.query.Get("keyword"))
	}

	var body struct {
		Type    string          `json:"type"`
		Results json.RawMessage `json:"results"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Type != "clinic" {
		t.Fatalf("response type must echo the request key, got %q", body.Type)
	}
	if string(body.Results) != "[]" {
		t.Fatalf("expected empty results array, got %s", body.Results)
	}
}

func TestFacilitiesEmergencyKeyword(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK", "results": []any{}})
	r := setupRouter("test-key", up.srv.URL)

	resp := get(r, "/facilities?type=EMERGENCY&lat=1&lng=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := up.query.Get("type"); got != "hospital" {
		t.Fatalf("expected upstream category hospital, got %q", got)
	}
	if got := up.query.Get("keyword"); got != "emergency" {
		t.Fatalf("expected keyword emergency, got %q", got)
	}
}

func TestFacilitiesDefaultsTypeAndRadius(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK", "results": []any{}})
	r := setupRouter("test-key", up.srv.URL)

	resp := get(r, "/facilities?lat=1&lng=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := up.query.Get("type"); got != "hospital" {
		t.Fatalf("expected default category hospital, got %q", got)
	}
	if got := up.query.Get("radius"); got != "5000" {
		t.Fatalf("expected default radius 5000, got %q", got)
	}
}

func TestFacilitiesCustomRadius(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK", "results": []any{}})
	r := setupRouter("test-key", up.srv.URL)

	get(r, "/facilities?lat=1&lng=2&radius=1200")
	if got := up.query.Get("radius"); got != "1200" {
		t.Fatalf("expected radius 1200, got %q", got)
	}
}

func TestFacilitiesInvalidRadius(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK"})
	r := setupRouter("test-key", up.srv.URL)

	resp := get(r, "/facilities?lat=1&lng=2&radius=near")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if up.calls != 0 {
		t.Fatal("invalid radius must make no upstream call")
	}
}

func TestFacilitiesMissingCredential(t *testing.T) {
	up := newUpstream(t, map[string]any{"status": "OK"})
	r := setupRouter("", up.srv.URL)

	resp := get(r, "/facilities?lat=1&lng=2")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] != "GOOGLE_MAPS_API_KEY not set" {
		t.Fatalf("error must name the missing credential, got %+v", body)
	}
	if up.calls != 0 {
		t.Fatal("missing credential must make no upstream call")
	}
}

func TestFacilitiesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	r := setupRouter("test-key", srv.URL)

	resp := get(r, "/facilities?lat=1&lng=2")
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Fatal("upstream failure must carry a message")
	}
}
