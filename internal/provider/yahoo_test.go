package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withYahooServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	old := yahooBaseURL
	yahooBaseURL = srv.URL
	t.Cleanup(func() {
		yahooBaseURL = old
		srv.Close()
	})
	return srv
}

func TestYahooHistory_SuffixAndSymbolMapping(t *testing.T) {
	var gotPath string
	withYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"chart":{"result":[{
			"timestamp":[1735776000,1735862400],
			"indicators":{"quote":[{
				"open":[100,104],"high":[105,106],"low":[99,103],"close":[104,105],"volume":[1000,1100]
			}]}
		}]}}`)
	})

	client := &YahooClient{Client: http.DefaultClient, Suffix: ".JK"}
	candles, err := client.History(context.Background(), "BBCA", "2025-01-01", "2025-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/BBCA.JK") {
		t.Errorf("expected suffixed symbol on the wire, got path %s", gotPath)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	for _, c := range candles {
		if c.Symbol != "BBCA" {
			t.Errorf("candle must keep the original symbol, got %q", c.Symbol)
		}
	}
	if candles[0].Date >= candles[1].Date {
		t.Errorf("candles not ascending by date: %s, %s", candles[0].Date, candles[1].Date)
	}
}

func TestYahooHistory_SkipsNullRows(t *testing.T) {
	withYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{
			"timestamp":[1735776000,1735862400,1735948800],
			"indicators":{"quote":[{
				"open":[100,null,104],"high":[105,null,106],"low":[99,null,103],
				"close":[104,null,105],"volume":[1000,null,1100]
			}]}
		}]}}`)
	})

	client := &YahooClient{Client: http.DefaultClient, Suffix: ".JK"}
	candles, err := client.History(context.Background(), "BBCA", "2025-01-01", "2025-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected null row skipped, got %d candles", len(candles))
	}
}

func TestYahooHistory_APIErrorIsTypedFetchError(t *testing.T) {
	withYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})

	client := &YahooClient{Client: http.DefaultClient, Suffix: ".JK"}
	_, err := client.History(context.Background(), "ZZZZ", "2025-01-01", "2025-01-10")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Symbol != "ZZZZ" {
		t.Errorf("expected symbol ZZZZ in error, got %q", fe.Symbol)
	}
}

func TestYahooHistory_EmptyResultIsNotAnError(t *testing.T) {
	withYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[]}}`)
	})

	client := &YahooClient{Client: http.DefaultClient, Suffix: ".JK"}
	candles, err := client.History(context.Background(), "BBCA", "2025-01-01", "2025-01-10")
	if err != nil {
		t.Fatalf("empty result must not be an error, got: %v", err)
	}
	if len(candles) != 0 {
		t.Fatalf("expected empty series, got %d", len(candles))
	}
}
