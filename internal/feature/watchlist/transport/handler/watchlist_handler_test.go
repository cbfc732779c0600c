package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	marketdomain "stock_watch/internal/feature/market/domain"
	marketentity "stock_watch/internal/feature/market/domain/entity"
	"stock_watch/internal/feature/watchlist/domain"
	"stock_watch/internal/feature/watchlist/domain/entity"
)

// mockWatchlistUsecase はWatchlistUsecaseインターフェースのモック実装です。
type mockWatchlistUsecase struct {
	LoadFunc          func(ctx context.Context) ([]entity.Entry, error)
	RefreshQuotesFunc func(ctx context.Context) []entity.Entry
	AddFunc           func(ctx context.Context, symbol string) (entity.Entry, error)
	RemoveFunc        func(ctx context.Context, symbol string) error
	ToggleFunc        func(ctx context.Context, symbol string) (bool, error)
	ContainsFunc      func(symbol string) bool
	EntriesFunc       func() []entity.Entry
}

func (m *mockWatchlistUsecase) Load(ctx context.Context) ([]entity.Entry, error) {
	return m.LoadFunc(ctx)
}

func (m *mockWatchlistUsecase) RefreshQuotes(ctx context.Context) []entity.Entry {
	return m.RefreshQuotesFunc(ctx)
}

func (m *mockWatchlistUsecase) Add(ctx context.Context, symbol string) (entity.Entry, error) {
	return m.AddFunc(ctx, symbol)
}

func (m *mockWatchlistUsecase) Remove(ctx context.Context, symbol string) error {
	return m.RemoveFunc(ctx, symbol)
}

func (m *mockWatchlistUsecase) Toggle(ctx context.Context, symbol string) (bool, error) {
	return m.ToggleFunc(ctx, symbol)
}

func (m *mockWatchlistUsecase) Contains(symbol string) bool {
	return m.ContainsFunc(symbol)
}

func (m *mockWatchlistUsecase) Entries() []entity.Entry {
	return m.EntriesFunc()
}

func sampleEntries() []entity.Entry {
	return []entity.Entry{
		{ID: 1, Symbol: "AAPL", Quote: &marketentity.Quote{Symbol: "AAPL", Price: 190.1, Change: 1.5, PercentChange: 0.8}},
		{ID: 2, Symbol: "BADSYM", QuoteErr: errors.New("finnhub quote BADSYM: malformed provider payload")},
	}
}

const sampleEntriesJSON = `[
	{"id":1,"symbol":"AAPL","quote":{"symbol":"AAPL","price":190.1,"change":1.5,"percent_change":0.8}},
	{"id":2,"symbol":"BADSYM","quote":null,"quote_error":"finnhub quote BADSYM: malformed provider payload"}
]`

func serve(router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestNewWatchlistHandler(t *testing.T) {
	t.Parallel()

	h := NewWatchlistHandler(&mockWatchlistUsecase{})

	assert.NotNil(t, h, "handler should not be nil")
	assert.NotNil(t, h.uc, "usecase should not be nil")
}

func TestWatchlistHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		entries      []entity.Entry
		expectedBody string
	}{
		{name: "success: entries with and without quote", entries: sampleEntries(), expectedBody: sampleEntriesJSON},
		{name: "success: empty watchlist", entries: []entity.Entry{}, expectedBody: `[]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewWatchlistHandler(&mockWatchlistUsecase{EntriesFunc: func() []entity.Entry { return tt.entries }})
			router := gin.New()
			router.GET("/watchlist", h.List)

			w := serve(router, http.MethodGet, "/watchlist", nil)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWatchlistHandler_Load(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockLoad       func(ctx context.Context) ([]entity.Entry, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: reloaded entries",
			mockLoad:       func(ctx context.Context) ([]entity.Entry, error) { return sampleEntries(), nil },
			expectedStatus: http.StatusOK,
			expectedBody:   sampleEntriesJSON,
		},
		{
			name: "failure: store unavailable",
			mockLoad: func(ctx context.Context) ([]entity.Entry, error) {
				return nil, &domain.StoreError{Op: "list", Err: errors.New("connection refused")}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"watchlist store list: connection refused"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewWatchlistHandler(&mockWatchlistUsecase{LoadFunc: tt.mockLoad})
			router := gin.New()
			router.POST("/watchlist/load", h.Load)

			w := serve(router, http.MethodPost, "/watchlist/load", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWatchlistHandler_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewWatchlistHandler(&mockWatchlistUsecase{RefreshQuotesFunc: func(ctx context.Context) []entity.Entry {
		return sampleEntries()
	}})
	router := gin.New()
	router.POST("/watchlist/refresh", h.Refresh)

	w := serve(router, http.MethodPost, "/watchlist/refresh", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, sampleEntriesJSON, w.Body.String())
}

func TestWatchlistHandler_Add(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		mockAdd        func(ctx context.Context, symbol string) (entity.Entry, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: created",
			body: `{"symbol":"aapl"}`,
			mockAdd: func(ctx context.Context, symbol string) (entity.Entry, error) {
				assert.Equal(t, "aapl", symbol)
				return sampleEntries()[0], nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":1,"symbol":"AAPL","quote":{"symbol":"AAPL","price":190.1,"change":1.5,"percent_change":0.8}}`,
		},
		{
			name:           "failure: missing symbol",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name: "failure: already watched",
			body: `{"symbol":"AAPL"}`,
			mockAdd: func(ctx context.Context, symbol string) (entity.Entry, error) {
				return entity.Entry{}, domain.ErrAlreadyWatched
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"symbol already in watchlist"}`,
		},
		{
			name: "failure: invalid symbol",
			body: `{"symbol":"BRK B"}`,
			mockAdd: func(ctx context.Context, symbol string) (entity.Entry, error) {
				return entity.Entry{}, marketdomain.ErrInvalidSymbol
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid ticker symbol"}`,
		},
		{
			name: "failure: store error",
			body: `{"symbol":"AAPL"}`,
			mockAdd: func(ctx context.Context, symbol string) (entity.Entry, error) {
				return entity.Entry{}, &domain.StoreError{Op: "insert", Symbol: "AAPL", Err: errors.New("timeout")}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"watchlist store insert AAPL: timeout"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewWatchlistHandler(&mockWatchlistUsecase{AddFunc: tt.mockAdd})
			router := gin.New()
			router.POST("/watchlist", h.Add)

			w := serve(router, http.MethodPost, "/watchlist", []byte(tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWatchlistHandler_Remove(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockRemove     func(ctx context.Context, symbol string) error
		expectedStatus int
	}{
		{
			name: "success: removed",
			mockRemove: func(ctx context.Context, symbol string) error {
				assert.Equal(t, "AAPL", symbol)
				return nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "failure: store error",
			mockRemove: func(ctx context.Context, symbol string) error {
				return &domain.StoreError{Op: "delete", Symbol: symbol, Err: errors.New("timeout")}
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewWatchlistHandler(&mockWatchlistUsecase{RemoveFunc: tt.mockRemove})
			router := gin.New()
			router.DELETE("/watchlist/:symbol", h.Remove)

			w := serve(router, http.MethodDelete, "/watchlist/AAPL", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestWatchlistHandler_Toggle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockToggle     func(ctx context.Context, symbol string) (bool, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: added",
			url:  "/watchlist/nvda/toggle",
			mockToggle: func(ctx context.Context, symbol string) (bool, error) {
				assert.Equal(t, "NVDA", symbol)
				return true, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"NVDA","added":true}`,
		},
		{
			name:           "success: removed",
			url:            "/watchlist/NVDA/toggle",
			mockToggle:     func(ctx context.Context, symbol string) (bool, error) { return false, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"NVDA","added":false}`,
		},
		{
			name:           "failure: invalid symbol",
			url:            "/watchlist/%20/toggle",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid ticker symbol"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewWatchlistHandler(&mockWatchlistUsecase{ToggleFunc: tt.mockToggle})
			router := gin.New()
			router.POST("/watchlist/:symbol/toggle", h.Toggle)

			w := serve(router, http.MethodPost, tt.url, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWatchlistHandler_Contains(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewWatchlistHandler(&mockWatchlistUsecase{ContainsFunc: func(symbol string) bool { return symbol == "AAPL" }})
	router := gin.New()
	router.GET("/watchlist/:symbol", h.Contains)

	w := serve(router, http.MethodGet, "/watchlist/aapl", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbol":"AAPL","watched":true}`, w.Body.String())

	w = serve(router, http.MethodGet, "/watchlist/MSFT", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbol":"MSFT","watched":false}`, w.Body.String())
}
