// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"net/http"
	"sync"
	"time"

	"github.com/staranto/smpctlgo/internal/pricestore"
)

const (
	// DefaultOverviewURL is the Steam Community Market price overview endpoint.
	DefaultOverviewURL = "https://steamcommunity.com/market/priceoverview/"
	// DefaultBulkURL is the aggregate provider's bulk price endpoint.
	DefaultBulkURL = "https://backpack.tf/api/IGetMarketPrices/v1/"
	// DefaultCurrency is ECurrencyCode 1, USD.
	DefaultCurrency = 1
	// DefaultMinRefreshInterval gates how often the aggregate list may be
	// refetched.
	DefaultMinRefreshInterval = 5 * time.Minute
)

// Options configures a Client. The zero value of most fields falls back to a
// sensible default; AppID and (for bulk queries) APIKey have none and are
// validated per call.
type Options struct {
	HTTPClient  *http.Client
	OverviewURL string
	BulkURL     string
	APIKey      string
	Format      string
	CachePath   string
	Currency    int
	AppID       int
	CacheTTL    time.Duration
	// MinRefreshInterval is the minimum time between aggregate refetches.
	MinRefreshInterval time.Duration
	// KeepCurrencySymbols retains the endpoint's display strings on the quote
	// instead of discarding them after normalization.
	KeepCurrencySymbols bool
}

// Client queries the market endpoints. Each Client owns its price store and
// its aggregate refresh gate, so independent clients never share state.
type Client struct {
	opts  Options
	http  *http.Client
	store *pricestore.Store
	now   func() time.Time

	// Refresh gate for the aggregate price list. fetchMu serializes whole
	// gate-check-and-fetch cycles; mu guards only the snapshot fields so
	// readers never wait on an in-flight upstream call.
	fetchMu   sync.Mutex
	mu        sync.Mutex
	lastFetch time.Time
	aggregate []byte
}

// New builds a Client. Option validation that depends on the operation
// (missing appid, key, item name) happens at call time.
func New(opts Options) *Client {
	if opts.OverviewURL == "" {
		opts.OverviewURL = DefaultOverviewURL
	}
	if opts.BulkURL == "" {
		opts.BulkURL = DefaultBulkURL
	}
	if opts.Currency == 0 {
		opts.Currency = DefaultCurrency
	}
	if opts.MinRefreshInterval == 0 {
		opts.MinRefreshInterval = DefaultMinRefreshInterval
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		opts:  opts,
		http:  httpClient,
		store: pricestore.New(opts.CachePath, opts.CacheTTL),
		now:   time.Now,
	}
}

// Store exposes the client's price store.
func (c *Client) Store() *pricestore.Store {
	return c.store
}

// LastAggregateFetch returns when the aggregate list was last fetched
// successfully, zero if never.
func (c *Client) LastAggregateFetch() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetch
}
