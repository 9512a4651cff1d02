package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"saftrade/internal/model"
)

// bulkQuoteLimit is the maximum number of symbols the prices endpoint
// accepts per request. Larger batches are truncated, not split.
const bulkQuoteLimit = 50

// GoAPIClient talks to the GoAPI market-data service. Read requests are
// retried on transient server errors; history errors are surfaced to the
// caller because the data provider's circuit breaker depends on them.
type GoAPIClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewGoAPIClient creates a client with optional proxy support.
func NewGoAPIClient(baseURL, apiKey, proxyURL string) *GoAPIClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GoAPIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// envelope is the common GoAPI response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// goAPIBar is one raw record from the API. Pointer fields distinguish a
// missing key from a zero value so malformed records can be dropped.
type goAPIBar struct {
	Symbol    *string  `json:"symbol"`
	Date      *string  `json:"date"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *int64   `json:"volume"`
	Change    *float64 `json:"change"`
	ChangePct *float64 `json:"change_pct"`
}

// toCandle validates required fields and collapses the record to the
// internal shape. symbol overrides the record's own symbol when non-empty
// (history responses omit it).
func (b *goAPIBar) toCandle(symbol string) (model.Candle, error) {
	if symbol == "" {
		if b.Symbol == nil {
			return model.Candle{}, fmt.Errorf("missing field symbol")
		}
		symbol = *b.Symbol
	}
	if b.Date == nil {
		return model.Candle{}, fmt.Errorf("missing field date")
	}
	for _, f := range []struct {
		name string
		val  *float64
	}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}} {
		if f.val == nil {
			return model.Candle{}, fmt.Errorf("missing field %s", f.name)
		}
	}
	if b.Volume == nil {
		return model.Candle{}, fmt.Errorf("missing field volume")
	}
	c := model.Candle{
		Symbol: symbol,
		Date:   *b.Date,
		Open:   *b.Open,
		High:   *b.High,
		Low:    *b.Low,
		Close:  *b.Close,
		Volume: *b.Volume,
	}
	if b.Change != nil {
		c.Change = *b.Change
	}
	if b.ChangePct != nil {
		c.ChangePct = *b.ChangePct
	}
	return c, nil
}

// payloadShape tags the recognized history payload layouts.
type payloadShape int

const (
	payloadUnrecognized payloadShape = iota
	payloadFlatArray
	payloadWrappedResults
)

// historyPayload is the history data field collapsed to one internal shape.
type historyPayload struct {
	shape payloadShape
	rows  []goAPIBar
}

// decodeHistoryPayload accepts the two documented layouts of the history
// data field: a flat array of records, or an object wrapping a results
// array. Anything else is tagged unrecognized and carries no rows.
func decodeHistoryPayload(data json.RawMessage) historyPayload {
	if len(data) == 0 {
		return historyPayload{shape: payloadUnrecognized}
	}
	var flat []goAPIBar
	if err := json.Unmarshal(data, &flat); err == nil {
		return historyPayload{shape: payloadFlatArray, rows: flat}
	}
	var wrapped struct {
		Results []goAPIBar `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Results != nil {
		return historyPayload{shape: payloadWrappedResults, rows: wrapped.Results}
	}
	return historyPayload{shape: payloadUnrecognized}
}

// retryableStatus reports whether a GET should be retried for this code.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// getWithRetry issues a GET with up to 3 retries on transient server
// errors, backing off 1s, 2s, 4s. The caller owns the response body.
func (g *GoAPIClient) getWithRetry(ctx context.Context, endpoint string) (*http.Response, error) {
	const maxRetries = 3
	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err = g.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("goapi request: %w", err)
		}
		if !retryableStatus(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		backoff := time.Duration(1<<uint(attempt)) * time.Second
		log.Printf("[WARN] goapi: status %d, retrying in %v (attempt %d/%d)", resp.StatusCode, backoff, attempt+1, maxRetries)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// BulkQuotes fetches the latest quotes for up to 50 symbols in one request.
// Batches over the limit are truncated to the first 50. Errors here are
// never fatal: envelope or transport failures are logged and yield an empty
// result, and a record missing a required field is dropped individually.
func (g *GoAPIClient) BulkQuotes(ctx context.Context, symbols []string) []model.Candle {
	if len(symbols) == 0 {
		return nil
	}
	if len(symbols) > bulkQuoteLimit {
		log.Printf("[WARN] goapi: symbol list has %d entries, truncating to %d", len(symbols), bulkQuoteLimit)
		symbols = symbols[:bulkQuoteLimit]
	}

	q := url.Values{}
	q.Set("api_key", g.APIKey)
	q.Set("symbols", strings.Join(symbols, ","))
	endpoint := fmt.Sprintf("%s/stock/idx/prices?%s", g.BaseURL, q.Encode())

	resp, err := g.getWithRetry(ctx, endpoint)
	if err != nil {
		log.Printf("[ERROR] goapi bulk quotes: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] goapi bulk quotes: status %d", resp.StatusCode)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Printf("[ERROR] goapi bulk quotes: decode: %v", err)
		return nil
	}
	if env.Status != "success" {
		log.Printf("[ERROR] goapi bulk quotes: %s", env.Message)
		return nil
	}

	var bars []goAPIBar
	if err := json.Unmarshal(env.Data, &bars); err != nil {
		log.Printf("[ERROR] goapi bulk quotes: decode data: %v", err)
		return nil
	}

	candles := make([]model.Candle, 0, len(bars))
	for _, b := range bars {
		c, err := b.toCandle("")
		if err != nil {
			sym := "UNKNOWN"
			if b.Symbol != nil {
				sym = *b.Symbol
			}
			log.Printf("[WARN] goapi bulk quotes: dropping record for %s: %v", sym, err)
			continue
		}
		candles = append(candles, c)
	}
	return candles
}

// History fetches daily history for a single symbol. Unlike BulkQuotes,
// transport, status and envelope failures are returned to the caller: the
// data provider trips its circuit breaker on them. An unrecognized data
// shape yields an empty result without error.
func (g *GoAPIClient) History(ctx context.Context, symbol, fromDate, toDate string) ([]model.Candle, error) {
	q := url.Values{}
	q.Set("api_key", g.APIKey)
	if fromDate != "" {
		q.Set("from", fromDate)
	}
	if toDate != "" {
		q.Set("to", toDate)
	}
	endpoint := fmt.Sprintf("%s/stock/idx/%s/historical?%s", g.BaseURL, url.PathEscape(symbol), q.Encode())

	resp, err := g.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("goapi history %s: %w", symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("goapi history %s: status %d", symbol, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("goapi history %s: decode: %w", symbol, err)
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("goapi history %s: %s", symbol, env.Message)
	}

	payload := decodeHistoryPayload(env.Data)
	if payload.shape == payloadUnrecognized {
		log.Printf("[WARN] goapi history %s: unrecognized data shape, treating as empty", symbol)
		return nil, nil
	}

	candles := make([]model.Candle, 0, len(payload.rows))
	for _, b := range payload.rows {
		c, err := b.toCandle(symbol)
		if err != nil {
			log.Printf("[WARN] goapi history %s: dropping record: %v", symbol, err)
			continue
		}
		candles = append(candles, c)
	}
	return candles, nil
}
