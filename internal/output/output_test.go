// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/smpctlgo/internal/market"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "value": 3.0},
		{"name": "alpha", "value": 1.0},
		{"name": "beta", "value": 2.0},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name",
			spec:      "name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "ascending by value",
			spec:      "value",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by value",
			spec:      "-value",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "multiple fields",
			spec:      "value,name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"zebra", "alpha", "beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "price keeps decimals", value: 2.5, want: "2.5"},
		{name: "price trims trailing zeros", value: 1234.0, want: "1234"},
		{name: "bool", value: true, want: "true"},
		{name: "nil with empty value", value: nil, emptyVal: "-", want: "-"},
		{name: "zero with empty value", value: 0.0, emptyVal: "-", want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterDataset(t *testing.T) {
	rows := []map[string]interface{}{
		{"name": "Mann Co. Supply Crate Key", "value": 2.5},
		{"name": "Tour of Duty Ticket", "value": 10.99},
		{"name": "Name Tag", "value": 5.0},
	}

	tests := []struct {
		name      string
		spec      string
		wantNames []string
	}{
		{
			name:      "no filters",
			spec:      "",
			wantNames: []string{"Mann Co. Supply Crate Key", "Tour of Duty Ticket", "Name Tag"},
		},
		{
			name:      "equality",
			spec:      "name=Name Tag",
			wantNames: []string{"Name Tag"},
		},
		{
			name:      "prefix",
			spec:      "name^Mann",
			wantNames: []string{"Mann Co. Supply Crate Key"},
		},
		{
			name:      "contains",
			spec:      "name@Ticket",
			wantNames: []string{"Tour of Duty Ticket"},
		},
		{
			name:      "numeric greater than",
			spec:      "value>4",
			wantNames: []string{"Tour of Duty Ticket", "Name Tag"},
		},
		{
			name:      "numeric less than",
			spec:      "value<3",
			wantNames: []string{"Mann Co. Supply Crate Key"},
		},
		{
			name:      "negated contains",
			spec:      "name!@Ticket",
			wantNames: []string{"Mann Co. Supply Crate Key", "Name Tag"},
		},
		{
			name:      "regex",
			spec:      "name/^(Name|Tour)",
			wantNames: []string{"Tour of Duty Ticket", "Name Tag"},
		},
		{
			name:      "negated regex",
			spec:      "name!/^Mann",
			wantNames: []string{"Tour of Duty Ticket", "Name Tag"},
		},
		{
			name:      "conjunction",
			spec:      "value>4,name@Tag",
			wantNames: []string{"Name Tag"},
		},
		{
			name:      "missing key matches nothing",
			spec:      "absent=1",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(rows, tt.spec)
			gotNames := make([]string, 0, len(got))
			for _, row := range got {
				gotNames = append(gotNames, row["name"].(string))
			}
			assert.ElementsMatch(t, tt.wantNames, gotNames)
		})
	}
}

func TestSelectColumns(t *testing.T) {
	defaults := []string{"name", "lowest", "median"}

	assert.Equal(t, defaults, SelectColumns(defaults, ""))
	assert.Equal(t, defaults, SelectColumns(defaults, "*"))
	assert.Equal(t, []string{"lowest", "name"}, SelectColumns(defaults, "lowest,name"))
	assert.Equal(t, []string{"name", "lowest"}, SelectColumns(defaults, "!median"))
}

func TestQuoteRows(t *testing.T) {
	results := map[string]market.Result{
		"beta": {Err: errors.New("item not found (status 404)")},
		"alpha": {Quote: market.Quote{
			Name:        "alpha",
			LowestPrice: 1.5,
			MedianPrice: 1.75,
			Volume:      "12",
		}},
		"kept": {Quote: market.Quote{
			Name:          "kept",
			LowestPrice:   5.82,
			LowestDisplay: "5,82€",
		}},
	}

	rows := QuoteRows(results)
	assert.Len(t, rows, 3)

	// Ordered by name.
	assert.Equal(t, "alpha", rows[0]["name"])
	assert.Equal(t, 1.5, rows[0]["lowest"])
	assert.Equal(t, 1.75, rows[0]["median"])
	assert.Equal(t, "12", rows[0]["volume"])

	assert.Equal(t, "beta", rows[1]["name"])
	assert.Equal(t, "item not found (status 404)", rows[1]["error"])
	assert.NotContains(t, rows[1], "lowest")

	assert.Equal(t, "5,82€", rows[2]["lowest"], "display form wins when kept")
}

func TestAggregateRows(t *testing.T) {
	raw := []byte(`{"response":{"success":1,"items":{
		"Zulu": {"value": 1099, "quantity": 3, "last_updated": 1700000000},
		"Alpha": {"value": 250}
	}}}`)

	rows := AggregateRows(raw)
	assert.Len(t, rows, 2)

	assert.Equal(t, "Alpha", rows[0]["name"])
	assert.Equal(t, 2.5, rows[0]["value"])
	assert.NotContains(t, rows[0], "quantity")

	assert.Equal(t, "Zulu", rows[1]["name"])
	assert.Equal(t, 10.99, rows[1]["value"])
	assert.Equal(t, int64(3), rows[1]["quantity"])
	assert.Contains(t, rows[1], "updated")
}
