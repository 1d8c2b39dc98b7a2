// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// AllPrices fetches the aggregate price list from the bulk provider, subject
// to the minimum refresh interval. While the gate is closed the last-known
// aggregate is returned instead of hitting the network. Only a fully
// successful fetch advances the gate.
func (c *Client) AllPrices(ctx context.Context) ([]byte, error) {
	if c.opts.Format != "" && c.opts.Format != "json" {
		return nil, &FormatError{Format: c.opts.Format}
	}
	if c.opts.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrConfiguration)
	}
	if c.opts.AppID == 0 {
		return nil, fmt.Errorf("%w: appid is required", ErrConfiguration)
	}

	// One gate-check-and-fetch cycle at a time. The snapshot lock is not
	// held across the upstream call, so LastAggregateFetch stays responsive
	// while a slow fetch is in flight.
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	c.mu.Lock()
	if !c.lastFetch.IsZero() && c.now().Sub(c.lastFetch) < c.opts.MinRefreshInterval {
		if len(c.aggregate) > 0 {
			retained := c.aggregate
			c.mu.Unlock()
			log.Debugf("aggregate gate closed, serving retained payload")
			return retained, nil
		}
		// Closed gate with nothing retained is inconsistent. Reset the gate
		// and fall through into one fresh fetch.
		log.Warnf("aggregate gate closed with no retained payload, resetting")
		c.lastFetch = time.Time{}
	}
	c.mu.Unlock()

	body, err := c.fetchAggregate(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64)
	gjson.GetBytes(body, "response.items").ForEach(func(key, value gjson.Result) bool {
		// Values arrive in the provider's minor unit.
		prices[key.String()] = value.Get("value").Float() / 100.0
		return true
	})
	c.store.PutMany(prices)

	c.mu.Lock()
	c.aggregate = body
	c.lastFetch = c.now()
	c.mu.Unlock()
	log.Debugf("aggregate refreshed, %d items", len(prices))

	return body, nil
}

// fetchAggregate performs the bulk GET and validates both the HTTP status and
// the in-body success flag.
func (c *Client) fetchAggregate(ctx context.Context) ([]byte, error) {
	format := c.opts.Format
	if format == "" {
		format = "json"
	}

	query := url.Values{
		"format": {format},
		"key":    {c.opts.APIKey},
		"appid":  {strconv.Itoa(c.opts.AppID)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BulkURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if gjson.GetBytes(body, "response.success").Int() != 1 {
		msg := gjson.GetBytes(body, "response.message").String()
		if msg == "" {
			msg = "aggregate provider reported failure"
		}
		return nil, &LogicError{Message: msg}
	}

	return body, nil
}
