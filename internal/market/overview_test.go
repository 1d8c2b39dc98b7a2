// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/smpctlgo/internal/pricestore"
)

// overviewServer stubs the price overview endpoint. Each named item maps to a
// canned status/body; hits are counted.
func overviewServer(t *testing.T, responses map[string]struct {
	status int
	body   string
}, hits *atomic.Int64,
) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		name := r.URL.Query().Get("market_hash_name")
		resp, ok := responses[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(resp.status)
		fmt.Fprint(w, resp.body)
	}))
}

func cachedClient(t *testing.T, opts Options) *Client {
	t.Helper()
	if opts.CachePath == "" {
		opts.CachePath = filepath.Join(t.TempDir(), "prices.json")
	}
	if opts.AppID == 0 {
		opts.AppID = 730
	}
	return New(opts)
}

func TestItemPrice_ConfigurationErrors(t *testing.T) {
	c := New(Options{})

	_, err := c.ItemPrice(context.Background(), "")
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = c.ItemPrice(context.Background(), "some item")
	assert.ErrorIs(t, err, ErrConfiguration, "missing appid")
}

func TestItemPrice_FetchAndNormalize(t *testing.T) {
	var hits atomic.Int64
	srv := overviewServer(t, map[string]struct {
		status int
		body   string
	}{
		"AWP | Asiimov (Field-Tested)": {
			status: 200,
			body:   `{"success":true,"lowest_price":"$1,234.56","volume":"94","median_price":"$1,199.99"}`,
		},
	}, &hits)
	defer srv.Close()

	c := cachedClient(t, Options{OverviewURL: srv.URL, CacheTTL: time.Hour})

	quote, err := c.ItemPrice(context.Background(), "AWP | Asiimov (Field-Tested)")
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, quote.LowestPrice)
	assert.Equal(t, 1199.99, quote.MedianPrice)
	assert.Equal(t, "94", quote.Volume)
	assert.False(t, quote.Cached)
	assert.Empty(t, quote.LowestDisplay)
	assert.Equal(t, int64(1), hits.Load())

	// The cache write is fire-and-forget, so poll for it.
	assert.Eventually(t, func() bool {
		entry, ok := c.Store().Get("AWP | Asiimov (Field-Tested)")
		return ok && entry.LowestPrice == 1234.56 && entry.UpdatedAt > 0
	}, time.Second, 10*time.Millisecond)
}

func TestItemPrice_QueryParameters(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"currency":         r.URL.Query().Get("currency"),
			"appid":            r.URL.Query().Get("appid"),
			"market_hash_name": r.URL.Query().Get("market_hash_name"),
		}
		fmt.Fprint(w, `{"success":true,"lowest_price":"$0.10"}`)
	}))
	defer srv.Close()

	c := New(Options{OverviewURL: srv.URL, Currency: 3, AppID: 440})
	_, err := c.ItemPrice(context.Background(), "Mann Co. Supply Crate Key")
	assert.NoError(t, err)

	assert.Equal(t, "3", gotQuery["currency"])
	assert.Equal(t, "440", gotQuery["appid"])
	assert.Equal(t, "Mann Co. Supply Crate Key", gotQuery["market_hash_name"])
}

func TestItemPrice_CachingDisabled(t *testing.T) {
	var hits atomic.Int64
	srv := overviewServer(t, map[string]struct {
		status int
		body   string
	}{
		"item": {status: 200, body: `{"success":true,"lowest_price":"$1.00"}`},
	}, &hits)
	defer srv.Close()

	cachePath := filepath.Join(t.TempDir(), "prices.json")
	c := New(Options{OverviewURL: srv.URL, AppID: 730, CachePath: cachePath, CacheTTL: 0})

	for range 2 {
		_, err := c.ItemPrice(context.Background(), "item")
		assert.NoError(t, err)
	}

	assert.Equal(t, int64(2), hits.Load(), "every lookup is a miss with caching off")
	_, err := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(err), "the store must never be written")
}

func TestItemPrice_FreshCacheHit(t *testing.T) {
	var hits atomic.Int64
	srv := overviewServer(t, nil, &hits)
	defer srv.Close()

	c := cachedClient(t, Options{OverviewURL: srv.URL, CacheTTL: time.Hour})
	c.Store().Put("item", pricestore.Entry{LowestPrice: 4.2, MedianPrice: 4.5})

	quote, err := c.ItemPrice(context.Background(), "item")
	assert.NoError(t, err)
	assert.True(t, quote.Cached)
	assert.Equal(t, 4.2, quote.LowestPrice)
	assert.Equal(t, 4.5, quote.MedianPrice)
	assert.NotZero(t, quote.UpdatedAt)
	assert.Equal(t, int64(0), hits.Load(), "a fresh entry must not hit the network")
}

func TestItemPrice_StaleEntryRefetches(t *testing.T) {
	var hits atomic.Int64
	srv := overviewServer(t, map[string]struct {
		status int
		body   string
	}{
		"item": {status: 200, body: `{"success":true,"lowest_price":"$2.00"}`},
	}, &hits)
	defer srv.Close()

	// TTL of a single second; backdate the entry by writing with a 1s TTL and
	// waiting it out.
	c := cachedClient(t, Options{OverviewURL: srv.URL, CacheTTL: time.Second})
	c.Store().Put("item", pricestore.Entry{LowestPrice: 9.9})
	time.Sleep(1100 * time.Millisecond)

	quote, err := c.ItemPrice(context.Background(), "item")
	assert.NoError(t, err)
	assert.False(t, quote.Cached)
	assert.Equal(t, 2.0, quote.LowestPrice)
	assert.Equal(t, int64(1), hits.Load())
}

func TestItemPrice_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		checkFunc func(*testing.T, error)
	}{
		{
			name:   "mapped status code",
			status: 429,
			checkFunc: func(t *testing.T, err error) {
				var se *StatusError
				assert.ErrorAs(t, err, &se)
				assert.Equal(t, 429, se.Code)
				assert.Contains(t, se.Message, "rate limit")
			},
		},
		{
			name:   "unmapped status code",
			status: 418,
			checkFunc: func(t *testing.T, err error) {
				var se *StatusError
				assert.ErrorAs(t, err, &se)
				assert.Equal(t, 418, se.Code)
				assert.Contains(t, se.Message, "unsuccessful response")
			},
		},
		{
			name:   "success flag false",
			status: 200,
			body:   `{"success":false}`,
			checkFunc: func(t *testing.T, err error) {
				var le *LogicError
				assert.ErrorAs(t, err, &le)
			},
		},
		{
			name:   "malformed body",
			status: 200,
			body:   `{not json`,
			checkFunc: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int64
			srv := overviewServer(t, map[string]struct {
				status int
				body   string
			}{
				"item": {status: tt.status, body: tt.body},
			}, &hits)
			defer srv.Close()

			c := New(Options{OverviewURL: srv.URL, AppID: 730})
			_, err := c.ItemPrice(context.Background(), "item")
			tt.checkFunc(t, err)
		})
	}
}

func TestItemPrice_TransportErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(Options{OverviewURL: srv.URL, AppID: 730})
	_, err := c.ItemPrice(context.Background(), "item")
	assert.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se), "transport errors are not status errors")
}

func TestItemPrice_KeepCurrencySymbols(t *testing.T) {
	var hits atomic.Int64
	srv := overviewServer(t, map[string]struct {
		status int
		body   string
	}{
		"item": {status: 200, body: `{"success":true,"lowest_price":"5,82€","median_price":"6,01€"}`},
	}, &hits)
	defer srv.Close()

	c := New(Options{OverviewURL: srv.URL, AppID: 730, KeepCurrencySymbols: true})
	quote, err := c.ItemPrice(context.Background(), "item")
	assert.NoError(t, err)
	assert.Equal(t, "5,82€", quote.LowestDisplay)
	assert.Equal(t, "6,01€", quote.MedianDisplay)
	assert.InDelta(t, 5.82, quote.LowestPrice, 0.0001)
}

func TestItemPrices_PartialFailure(t *testing.T) {
	var hits atomic.Int64
	srv := overviewServer(t, map[string]struct {
		status int
		body   string
	}{
		"alpha": {status: 200, body: `{"success":true,"lowest_price":"$1.00"}`},
		"beta":  {status: 500, body: ``},
		"gamma": {status: 200, body: `{"success":true,"lowest_price":"$3.00"}`},
	}, &hits)
	defer srv.Close()

	c := New(Options{OverviewURL: srv.URL, AppID: 730})
	results := c.ItemPrices(context.Background(), []string{"alpha", "beta", "gamma"})

	assert.Len(t, results, 3, "every input name must be present")
	assert.NoError(t, results["alpha"].Err)
	assert.Equal(t, 1.0, results["alpha"].Quote.LowestPrice)
	assert.Error(t, results["beta"].Err)
	assert.NoError(t, results["gamma"].Err)
	assert.Equal(t, 3.0, results["gamma"].Quote.LowestPrice)
	assert.Equal(t, int64(3), hits.Load())
}
