package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"saftrade/internal/model"
)

// FetchError wraps a secondary-source failure so call sites can tell it
// apart from a genuine empty history.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("yahoo fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// YahooClient fetches daily history from the Yahoo Finance chart API. It is
// the fallback source: tickers are suffixed with the configured exchange
// suffix on the wire, and candles keep the original symbol.
type YahooClient struct {
	Client *http.Client
	Suffix string
}

// NewYahooClient creates a client with optional proxy support.
func NewYahooClient(suffix, proxyURL string) *YahooClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooClient{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Suffix: suffix,
	}
}

// BaseURL is overridable for tests.
var yahooBaseURL = "https://query1.finance.yahoo.com"

// yahooChart is the chart API response. OHLCV fields arrive as untyped
// arrays that may contain nulls for holidays and halts.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// History fetches daily bars between fromDate and toDate (YYYY-MM-DD,
// exclusive end). A row that fails to coerce is skipped individually. The
// returned error is always a *FetchError; the data provider collapses it to
// an empty series but the distinction stays visible for diagnostics.
func (y *YahooClient) History(ctx context.Context, symbol, fromDate, toDate string) ([]model.Candle, error) {
	wireSymbol := symbol + y.Suffix

	from, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		from = time.Now().AddDate(-1, 0, 0)
	}
	to, err := time.Parse("2006-01-02", toDate)
	if err != nil {
		to = time.Now().AddDate(0, 0, 1)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		yahooBaseURL, url.PathEscape(wireSymbol), from.Unix(), to.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("decode: %w", err)}
	}
	if chart.Chart.Error != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]model.Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		o, okO := toFloat(quote.Open[i])
		h, okH := toFloat(quote.High[i])
		l, okL := toFloat(quote.Low[i])
		c, okC := toFloat(quote.Close[i])
		v, okV := toFloat(quote.Volume[i])
		if !okO || !okH || !okL || !okC || !okV {
			continue // null bar (holiday, halt) or malformed row
		}
		candles = append(candles, model.Candle{
			Symbol: symbol,
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(v),
		})
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Date < candles[j].Date })
	log.Printf("[INFO] yahoo: retrieved %d candles for %s", len(candles), wireSymbol)
	return candles, nil
}
