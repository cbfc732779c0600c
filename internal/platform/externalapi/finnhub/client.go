package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stock_watch/internal/feature/market/domain"
	"stock_watch/internal/feature/market/domain/entity"
	searchusecase "stock_watch/internal/feature/search/usecase"
	"stock_watch/internal/platform/externalapi/finnhub/dto"
	"stock_watch/internal/shared/ratelimiter"
)

const provider = "finnhub"

// Client はFinnhubからクォートと日足を取得します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

var (
	_ searchusecase.QuoteFetcher   = (*Client)(nil)
	_ searchusecase.HistoryFetcher = (*Client)(nil)
)

// NewClient はFinnhubクライアントを生成します。limiter は nil でも構いません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Quote は現在値と前日終値からの変化を返します。
func (c *Client) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.QuoteResponse
	if err := c.get(ctx, "/quote", q, &body); err != nil {
		return entity.Quote{}, wrap("quote", symbol, err)
	}
	// 存在しない銘柄は {"c":0,"d":null,"dp":null,...} として返される
	if body.Current == nil || body.Change == nil || body.PercentChange == nil {
		return entity.Quote{}, wrap("quote", symbol, fmt.Errorf("%w: missing price fields", domain.ErrMalformedPayload))
	}

	return entity.Quote{
		Symbol:        symbol,
		Price:         *body.Current,
		Change:        *body.Change,
		PercentChange: *body.PercentChange,
	}, nil
}

// History は [from, to] の範囲の日次終値を返します。
// ステータスが "no_data" の場合はエラーではなく空の系列を返します。
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", "D")
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	var body dto.CandleResponse
	if err := c.get(ctx, "/stock/candle", q, &body); err != nil {
		return nil, wrap("history", symbol, err)
	}

	switch body.Status {
	case "no_data":
		return []entity.PricePoint{}, nil
	case "ok":
	default:
		return nil, wrap("history", symbol, fmt.Errorf("%w: status %q", domain.ErrMalformedPayload, body.Status))
	}
	if len(body.Timestamps) != len(body.Closes) {
		return nil, wrap("history", symbol, fmt.Errorf("%w: %d timestamps, %d closes",
			domain.ErrMalformedPayload, len(body.Timestamps), len(body.Closes)))
	}

	points := make([]entity.PricePoint, 0, len(body.Closes))
	for i, ts := range body.Timestamps {
		points = append(points, entity.PricePoint{Date: time.Unix(ts, 0).UTC(), Price: body.Closes[i]})
	}
	return points, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Finnhub-Token", c.cfg.APIKey)

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		se := &statusError{code: res.StatusCode}
		var eb dto.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&eb) == nil {
			se.message = eb.Error
		}
		return se
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return nil
}

type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("finnhub http %d: %s", e.code, e.message)
	}
	return fmt.Sprintf("finnhub http %d", e.code)
}

func wrap(op, symbol string, err error) error {
	fe := &domain.FetchError{Provider: provider, Op: op, Symbol: symbol, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		fe.Status = se.code
	}
	return fe
}
