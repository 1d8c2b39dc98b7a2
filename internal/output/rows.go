// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/staranto/smpctlgo/internal/driller"
	"github.com/staranto/smpctlgo/internal/market"
)

// Default column sets for the two query shapes.
var (
	QuoteColumns     = []string{"name", "lowest", "median", "volume", "updated", "error"}
	AggregateColumns = []string{"name", "value", "quantity", "updated"}
	CurrencyColumns  = []string{"id", "code", "name"}
)

// QuoteRows flattens a batch of per-item results into dataset rows, ordered
// by item name. Failed items become rows carrying the error message.
func QuoteRows(results map[string]market.Result) []map[string]interface{} {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		result := results[name]
		row := map[string]interface{}{"name": name}

		if result.Err != nil {
			row["error"] = result.Err.Error()
			rows = append(rows, row)
			continue
		}

		quote := result.Quote
		if quote.LowestDisplay != "" {
			row["lowest"] = quote.LowestDisplay
		} else {
			row["lowest"] = quote.LowestPrice
		}
		if quote.MedianDisplay != "" {
			row["median"] = quote.MedianDisplay
		} else if quote.MedianPrice != 0 {
			row["median"] = quote.MedianPrice
		}
		if quote.Volume != "" {
			row["volume"] = quote.Volume
		}
		if quote.Cached && quote.UpdatedAt > 0 {
			row["updated"] = humanize.Time(time.Unix(quote.UpdatedAt, 0))
		}

		rows = append(rows, row)
	}

	return rows
}

// AggregateRows flattens the bulk provider payload into dataset rows, one per
// item, ordered by name. Values arrive in minor units and render as
// major-unit decimals.
func AggregateRows(raw []byte) []map[string]interface{} {
	//nolint:prealloc
	var rows []map[string]interface{}

	gjson.GetBytes(raw, "response.items").ForEach(func(key, item gjson.Result) bool {
		row := map[string]interface{}{
			"name":  key.String(),
			"value": driller.Driller(item.Raw, "value").Float() / 100.0,
		}

		if quantity := driller.Driller(item.Raw, "quantity"); quantity.Exists() {
			row["quantity"] = quantity.Int()
		}
		if updated := driller.Driller(item.Raw, "last_updated"); updated.Exists() {
			row["updated"] = humanize.Time(time.Unix(updated.Int(), 0))
		}

		rows = append(rows, row)
		return true
	})

	sort.Slice(rows, func(i, j int) bool {
		return rows[i]["name"].(string) < rows[j]["name"].(string)
	})

	return rows
}

// CurrencyRows renders the ECurrencyCode table.
func CurrencyRows(currencies []market.Currency) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(currencies))
	for _, c := range currencies {
		rows = append(rows, map[string]interface{}{
			"id":   c.ID,
			"code": c.Code,
			"name": c.Name,
		})
	}
	return rows
}
