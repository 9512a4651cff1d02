package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBulkQuotes_TruncatesToLimit(t *testing.T) {
	var gotSymbols string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		fmt.Fprint(w, `{"status":"success","data":[]}`)
	}))
	defer srv.Close()

	symbols := make([]string, 60)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%02d", i)
	}
	client := NewGoAPIClient(srv.URL, "key", "")
	client.BulkQuotes(context.Background(), symbols)

	sent := strings.Split(gotSymbols, ",")
	if len(sent) != 50 {
		t.Fatalf("expected 50 symbols on the wire, got %d", len(sent))
	}
	if sent[0] != "SYM00" || sent[49] != "SYM49" {
		t.Errorf("expected the first 50 symbols, got %s..%s", sent[0], sent[49])
	}
}

func TestBulkQuotes_DropsMalformedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":[
			{"symbol":"BBCA","date":"2025-01-02","open":100,"high":105,"low":99,"close":104,"volume":1000,"change":4,"change_pct":0.04},
			{"symbol":"TLKM","date":"2025-01-02","open":50,"high":52,"low":49,"volume":500}
		]}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	candles := client.BulkQuotes(context.Background(), []string{"BBCA", "TLKM"})
	if len(candles) != 1 {
		t.Fatalf("expected 1 candle after dropping the record missing close, got %d", len(candles))
	}
	if candles[0].Symbol != "BBCA" || candles[0].Change != 4 {
		t.Errorf("unexpected surviving candle: %+v", candles[0])
	}
}

func TestBulkQuotes_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"invalid api key"}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "bad", "")
	if candles := client.BulkQuotes(context.Background(), []string{"BBCA"}); len(candles) != 0 {
		t.Fatalf("expected empty result for error envelope, got %d", len(candles))
	}
}

func TestHistory_FlatArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":[
			{"date":"2025-01-02","open":100,"high":105,"low":99,"close":104,"volume":1000}
		]}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	candles, err := client.History(context.Background(), "BBCA", "2025-01-01", "2025-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 1 || candles[0].Symbol != "BBCA" {
		t.Fatalf("unexpected candles: %+v", candles)
	}
}

func TestHistory_WrappedResultsShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"results":[
			{"date":"2025-01-02","open":100,"high":105,"low":99,"close":104,"volume":1000},
			{"date":"2025-01-03","open":104,"high":106,"low":103,"close":105,"volume":1100}
		]}}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	candles, err := client.History(context.Background(), "BBCA", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles from wrapped shape, got %d", len(candles))
	}
}

func TestHistory_UnrecognizedShapeIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":"oops"}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	candles, err := client.History(context.Background(), "BBCA", "", "")
	if err != nil {
		t.Fatalf("unrecognized shape must not error, got: %v", err)
	}
	if len(candles) != 0 {
		t.Fatalf("expected empty result, got %d", len(candles))
	}
}

func TestHistory_ErrorEnvelopePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"symbol not found"}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	if _, err := client.History(context.Background(), "XXXX", "", ""); err == nil {
		t.Fatal("expected error envelope to propagate from History")
	}
}

func TestHistory_NonOKStatusPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	if _, err := client.History(context.Background(), "BBCA", "", ""); err == nil {
		t.Fatal("expected non-2xx to propagate from History")
	}
}

func TestGetWithRetry_RetriesTransientStatus(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"status":"success","data":[]}`)
	}))
	defer srv.Close()

	client := NewGoAPIClient(srv.URL, "key", "")
	if _, err := client.History(context.Background(), "BBCA", "", ""); err != nil {
		t.Fatalf("expected success after retry, got: %v", err)
	}
	if hits != 2 {
		t.Fatalf("expected 2 requests, got %d", hits)
	}
}
