package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockview/internal/market"
)

func TestRetrieveExternalStocksFlow(t *testing.T) {
	t.Run("proxies_provider_payload", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("symbol"); got != "AAPL" {
				t.Errorf("expected symbol AAPL, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Meta Data": {"2. Symbol": "AAPL"}, "Time Series (5min)": {}}`))
		}))
		defer upstream.Close()

		client := market.NewClient(upstream.URL, "test-key", upstream.Client())
		router := setupApp(t, client)
		token := registerUser(t, router, "market@example.com")

		w := doJSON(t, router, http.MethodGet, "/api/retrieve-external-stocks?name=AAPL", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected transport 200, got %d", w.Code)
		}
		body := parseBody(t, w)
		if body["status"] != float64(200) || body["message"] != "success" {
			t.Fatalf("unexpected envelope: %v", body)
		}
		data, ok := body["stock_data"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected stock_data object, got %v", body["stock_data"])
		}
		if _, ok := data["Meta Data"]; !ok {
			t.Error("expected provider payload passed through")
		}
	})

	t.Run("missing_name_reports_400_in_envelope", func(t *testing.T) {
		client := market.NewClient("http://127.0.0.1:0", "test-key", &http.Client{Timeout: time.Second})
		router := setupApp(t, client)
		token := registerUser(t, router, "market2@example.com")

		w := doJSON(t, router, http.MethodGet, "/api/retrieve-external-stocks", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected transport 200, got %d", w.Code)
		}
		body := parseBody(t, w)
		if body["status"] != float64(400) || body["message"] != "no stock name provided" {
			t.Errorf("unexpected envelope: %v", body)
		}
	})

	t.Run("upstream_error_status_is_echoed", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		client := market.NewClient(upstream.URL, "test-key", upstream.Client())
		router := setupApp(t, client)
		token := registerUser(t, router, "market3@example.com")

		w := doJSON(t, router, http.MethodGet, "/api/retrieve-external-stocks?name=AAPL", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected transport 200, got %d", w.Code)
		}
		body := parseBody(t, w)
		if body["status"] != float64(500) || body["message"] != "error" {
			t.Errorf("unexpected envelope: %v", body)
		}
	})

	t.Run("unreachable_upstream_reports_502_in_envelope", func(t *testing.T) {
		// A closed server guarantees a connection error.
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := upstream.URL
		upstream.Close()

		client := market.NewClient(url, "test-key", &http.Client{Timeout: time.Second})
		router := setupApp(t, client)
		token := registerUser(t, router, "market4@example.com")

		w := doJSON(t, router, http.MethodGet, "/api/retrieve-external-stocks?name=AAPL", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected transport 200, got %d", w.Code)
		}
		body := parseBody(t, w)
		if body["status"] != float64(502) {
			t.Errorf("expected envelope status 502, got %v", body["status"])
		}
		if body["message"] != "Server has encountered an error retrieving data" {
			t.Errorf("unexpected message: %v", body["message"])
		}
	})

	t.Run("unparseable_upstream_body_reports_502_in_envelope", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer upstream.Close()

		client := market.NewClient(upstream.URL, "test-key", upstream.Client())
		router := setupApp(t, client)
		token := registerUser(t, router, "market5@example.com")

		w := doJSON(t, router, http.MethodGet, "/api/retrieve-external-stocks?name=AAPL", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected transport 200, got %d", w.Code)
		}
		body := parseBody(t, w)
		if body["status"] != float64(502) {
			t.Errorf("expected envelope status 502, got %v", body["status"])
		}
	})
}
