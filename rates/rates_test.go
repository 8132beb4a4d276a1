package rates

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Provider{
		cacheFile: filepath.Join(t.TempDir(), "rates.json"),
		base:      srv.URL,
		now:       time.Now,
	}
}

func TestRateFetchAndCache(t *testing.T) {
	calls := 0
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true,"base":"EUR","rates":{"USD":1.25}}`))
	})

	rate, err := p.Rate()
	if err != nil {
		t.Fatal(err)
	}
	if got := rate.EURToUSD.String(); got != "1.25" {
		t.Errorf("EURToUSD = %s, want 1.25", got)
	}
	if got := rate.USDToEUR.StringFixed(2); got != "0.80" {
		t.Errorf("USDToEUR = %s, want 0.80", got)
	}

	// second call must be served from the cache file
	if _, err := p.Rate(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("API called %d times, want 1", calls)
	}
}

func TestRateStaleCacheRefreshes(t *testing.T) {
	calls := 0
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"rates":{"USD":1.10}}`))
	})

	if _, err := p.Rate(); err != nil {
		t.Fatal(err)
	}
	// jump past the freshness window
	p.now = func() time.Time { return time.Now().Add(maxAge + time.Minute) }
	if _, err := p.Rate(); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("API called %d times, want 2", calls)
	}
}

func TestRateFallsBackToLastKnown(t *testing.T) {
	healthy := true
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"rates":{"USD":1.30}}`))
	})

	if _, err := p.Rate(); err != nil {
		t.Fatal(err)
	}

	healthy = false
	p.now = func() time.Time { return time.Now().Add(maxAge + time.Minute) }
	rate, err := p.Rate()
	if err != nil {
		t.Fatalf("expected fallback to last known rate, got %v", err)
	}
	if got := rate.EURToUSD.String(); got != "1.3" {
		t.Errorf("EURToUSD = %s, want 1.3", got)
	}
}

func TestRateNoCacheNoNetwork(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	if _, err := p.Rate(); err == nil {
		t.Error("expected an error with no cache and no network")
	}
}
