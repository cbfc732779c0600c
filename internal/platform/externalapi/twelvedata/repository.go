package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stock_watch/internal/feature/market/domain"
	"stock_watch/internal/feature/market/domain/entity"
	searchusecase "stock_watch/internal/feature/search/usecase"
	"stock_watch/internal/platform/externalapi/twelvedata/dto"
	"stock_watch/internal/shared/ratelimiter"
)

const provider = "twelvedata"

// TwelveDataMarket はTwelve Dataからクォートと日次終値を取得します。
type TwelveDataMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

var (
	_ searchusecase.QuoteFetcher   = (*TwelveDataMarket)(nil)
	_ searchusecase.HistoryFetcher = (*TwelveDataMarket)(nil)
)

// NewTwelveDataMarket はクライアントを生成します。limiter は nil でも構いません。
func NewTwelveDataMarket(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client, limiter: limiter}
}

// Quote は銘柄の最新価格と変化量を返します。
func (t *TwelveDataMarket) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.QuoteResponse
	if err := t.get(ctx, "/quote", q, &body); err != nil {
		return entity.Quote{}, wrap("quote", symbol, err)
	}
	if body.Status == "error" {
		return entity.Quote{}, wrap("quote", symbol, fmt.Errorf("twelvedata: %s", body.Message))
	}

	price, err := parsePrice(body.Close)
	if err != nil {
		return entity.Quote{}, wrap("quote", symbol, fmt.Errorf("%w: parse close %q", domain.ErrMalformedPayload, body.Close))
	}
	change, err := parsePrice(body.Change)
	if err != nil {
		return entity.Quote{}, wrap("quote", symbol, fmt.Errorf("%w: parse change %q", domain.ErrMalformedPayload, body.Change))
	}
	pct, err := parsePrice(body.PercentChange)
	if err != nil {
		return entity.Quote{}, wrap("quote", symbol, fmt.Errorf("%w: parse percent_change %q", domain.ErrMalformedPayload, body.PercentChange))
	}

	return entity.Quote{Symbol: symbol, Price: price, Change: change, PercentChange: pct}, nil
}

// History は from から to までの日次終値を返します。
// データがない旨の応答はエラーではなく空の系列になります。
func (t *TwelveDataMarket) History(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("start_date", from.UTC().Format("2006-01-02"))
	q.Set("end_date", to.UTC().Format("2006-01-02"))
	q.Set("order", "ASC")

	var body dto.TimeSeriesResponse
	if err := t.get(ctx, "/time_series", q, &body); err != nil {
		return nil, wrap("history", symbol, err)
	}
	if body.Status == "error" {
		if isNoData(body.Message) {
			return []entity.PricePoint{}, nil
		}
		return nil, wrap("history", symbol, fmt.Errorf("twelvedata: %s", body.Message))
	}

	points := make([]entity.PricePoint, 0, len(body.Values))
	for _, v := range body.Values {
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, wrap("history", symbol, fmt.Errorf("%w: parse time %q", domain.ErrMalformedPayload, v.Datetime))
			}
		}
		c, err := parsePrice(v.Close)
		if err != nil {
			return nil, wrap("history", symbol, fmt.Errorf("%w: parse close %q", domain.ErrMalformedPayload, v.Close))
		}
		points = append(points, entity.PricePoint{Date: tm, Price: c})
	}
	return points, nil
}

func (t *TwelveDataMarket) get(ctx context.Context, path string, q url.Values, out any) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	q.Set("apikey", t.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", t.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &statusError{code: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return nil
}

type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("twelvedata http %d", e.code) }

func wrap(op, symbol string, err error) error {
	fe := &domain.FetchError{Provider: provider, Op: op, Symbol: symbol, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		fe.Status = se.code
	}
	return fe
}

// parsePrice は "189.9800" のような10進数文字列を解析します。
func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func isNoData(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "no data")
}
