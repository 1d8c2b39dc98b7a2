// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/smpctlgo/internal/pricestore"
)

// Quote is a normalized price overview for one item.
type Quote struct {
	Name        string  `json:"name"`
	LowestPrice float64 `json:"lowest_price"`
	MedianPrice float64 `json:"median_price,omitempty"`
	Volume      string  `json:"volume,omitempty"`
	// Display forms exactly as the endpoint returned them. Populated only
	// when Options.KeepCurrencySymbols is set.
	LowestDisplay string `json:"lowest_display,omitempty"`
	MedianDisplay string `json:"median_display,omitempty"`
	// UpdatedAt is set when the quote came out of the cache.
	UpdatedAt int64 `json:"updated_at,omitempty"`
	Cached    bool  `json:"cached,omitempty"`
}

// Result pairs a quote with the error that produced it, so a batch can carry
// per-item failures as data.
type Result struct {
	Quote Quote
	Err   error
}

type overviewResponse struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

// ItemPrice resolves one item against the price overview endpoint, consulting
// the price store first when caching is enabled. The cache write on a
// successful fetch is fire-and-forget.
func (c *Client) ItemPrice(ctx context.Context, name string) (Quote, error) {
	if name == "" {
		return Quote{}, fmt.Errorf("%w: item name is required", ErrConfiguration)
	}
	if c.opts.AppID == 0 {
		return Quote{}, fmt.Errorf("%w: appid is required", ErrConfiguration)
	}

	if entry, ok := c.store.Lookup(name); ok {
		return Quote{
			Name:        name,
			LowestPrice: entry.LowestPrice,
			MedianPrice: entry.MedianPrice,
			UpdatedAt:   entry.UpdatedAt,
			Cached:      true,
		}, nil
	}

	query := url.Values{
		"currency":         {strconv.Itoa(c.opts.Currency)},
		"appid":            {strconv.Itoa(c.opts.AppID)},
		"market_hash_name": {name},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.OverviewURL+"?"+query.Encode(), nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport errors pass through unchanged.
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to read response: %w", err)
	}

	var overview overviewResponse
	if err := json.Unmarshal(body, &overview); err != nil {
		return Quote{}, fmt.Errorf("failed to decode price overview: %w", err)
	}
	if !overview.Success {
		return Quote{}, &LogicError{Message: "price overview reported failure"}
	}

	quote := Quote{Name: name, Volume: overview.Volume}

	if c.opts.KeepCurrencySymbols {
		quote.LowestDisplay = overview.LowestPrice
		quote.MedianDisplay = overview.MedianPrice
	}

	lowest, lowestErr := NormalizePrice(overview.LowestPrice)
	if lowestErr != nil {
		log.Warnf("unparseable lowest price for %s: %v", name, lowestErr)
	}
	quote.LowestPrice = lowest

	// median_price is not always present in the overview.
	if overview.MedianPrice != "" {
		median, err := NormalizePrice(overview.MedianPrice)
		if err != nil {
			log.Warnf("unparseable median price for %s: %v", name, err)
		}
		quote.MedianPrice = median
	}

	if c.store.Active() && lowestErr == nil {
		entry := pricestore.Entry{
			LowestPrice: quote.LowestPrice,
			MedianPrice: quote.MedianPrice,
		}
		go c.store.Put(name, entry)
	}

	return quote, nil
}

// ItemPrices fetches every named item concurrently and waits for all of them.
// The returned map has a Result for every input name; one item failing never
// disturbs the others.
func (c *Client) ItemPrices(ctx context.Context, names []string) map[string]Result {
	results := make(map[string]Result, len(names))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			quote, err := c.ItemPrice(ctx, name)
			mu.Lock()
			results[name] = Result{Quote: quote, Err: err}
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	return results
}
