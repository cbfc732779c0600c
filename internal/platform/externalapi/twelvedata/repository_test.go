package twelvedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock_watch/internal/feature/market/domain"
)

func newTestMarket(t *testing.T, h http.HandlerFunc) *TwelveDataMarket {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewTwelveDataMarket(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client(), nil)
}

func TestNewTwelveDataMarket(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "test-key", BaseURL: "https://api.test.com"}
	market := NewTwelveDataMarket(cfg, &http.Client{}, nil)

	if market == nil {
		t.Fatal("expected non-nil market")
	}
	if market.cfg.APIKey != cfg.APIKey {
		t.Errorf("expected API key %q, got %q", cfg.APIKey, market.cfg.APIKey)
	}
}

func TestTwelveDataMarket_Quote_Success(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("expected path /quote, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %s", r.URL.Query().Get("apikey"))
		}
		_, _ = w.Write([]byte(`{"symbol":"AAPL","close":"154.50","change":"-1.25","percent_change":"-0.80"}`))
	})

	q, err := market.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Symbol != "AAPL" || q.Price != 154.50 || q.Change != -1.25 || q.PercentChange != -0.80 {
		t.Errorf("unexpected quote: %+v", q)
	}
}

func TestTwelveDataMarket_Quote_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantText   string
		malformed  bool
	}{
		{name: "http error", status: http.StatusTooManyRequests, wantStatus: http.StatusTooManyRequests, wantText: "twelvedata http 429"},
		{name: "api error", status: http.StatusOK, body: `{"status":"error","code":401,"message":"Invalid API key"}`, wantText: "Invalid API key"},
		{name: "invalid json", status: http.StatusOK, body: `{invalid json`, malformed: true},
		{name: "invalid close", status: http.StatusOK, body: `{"close":"abc","change":"1","percent_change":"1"}`, wantText: "parse close", malformed: true},
		{name: "invalid change", status: http.StatusOK, body: `{"close":"1","change":"x","percent_change":"1"}`, wantText: "parse change", malformed: true},
		{name: "invalid percent", status: http.StatusOK, body: `{"close":"1","change":"1","percent_change":""}`, wantText: "parse percent_change", malformed: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := market.Quote(context.Background(), "AAPL")

			var fe *domain.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *domain.FetchError, got %T (%v)", err, err)
			}
			if fe.Op != "quote" || fe.Symbol != "AAPL" || fe.Provider != "twelvedata" {
				t.Errorf("unexpected fetch error fields: %+v", fe)
			}
			if fe.Status != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, fe.Status)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("expected error containing %q, got %v", tt.wantText, err)
			}
			if tt.malformed != errors.Is(err, domain.ErrMalformedPayload) {
				t.Errorf("malformed = %v, got %v", tt.malformed, err)
			}
		})
	}
}

func TestTwelveDataMarket_History_Success(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("interval") != "1day" {
			t.Errorf("expected interval 1day, got %s", q.Get("interval"))
		}
		if q.Get("start_date") != "2025-01-01" || q.Get("end_date") != "2025-01-31" {
			t.Errorf("unexpected window %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"values": [
				{"datetime": "2025-01-14 09:30:00", "close": "150.00"},
				{"datetime": "2025-01-15", "close": "154.50"}
			]
		}`))
	})

	points, err := market.History(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].Price != 154.50 || !points[1].Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected second point: %+v", points[1])
	}
}

func TestTwelveDataMarket_History_NoData(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":400,"message":"No data is available on the specified dates."}`))
	})

	points, err := market.History(context.Background(), "AAPL", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Errorf("expected empty non-nil series, got %v", points)
	}
}

func TestTwelveDataMarket_History_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		errField string
	}{
		{
			name:     "invalid datetime",
			response: `{"status":"ok","values":[{"datetime":"invalid-date","close":"1"}]}`,
			errField: "parse time",
		},
		{
			name:     "invalid close",
			response: `{"status":"ok","values":[{"datetime":"2025-01-15","close":"bad"}]}`,
			errField: "parse close",
		},
		{
			name:     "api error",
			response: `{"status":"error","message":"Invalid API key"}`,
			errField: "Invalid API key",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.response))
			})

			_, err := market.History(context.Background(), "AAPL", time.Now().Add(-time.Hour), time.Now())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errField) {
				t.Errorf("expected error containing %q, got %v", tt.errField, err)
			}
		})
	}
}

func TestTwelveDataMarket_ContextCancellation(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := market.Quote(ctx, "AAPL"); err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}
