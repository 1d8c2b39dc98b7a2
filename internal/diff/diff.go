// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package diff renders what an aggregate refresh changed in the persisted
// price document.
package diff

import (
	"encoding/json"
	"fmt"

	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Render compares the price document before and after a refresh and returns
// an ASCII diff. An empty string means nothing changed.
func Render(before, after map[string]float64, coloring bool) (string, error) {
	left, err := json.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	right, err := json.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("failed to compare documents: %w", err)
	}
	if !d.Modified() {
		return "", nil
	}

	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", fmt.Errorf("failed to unmarshal document: %w", err)
	}

	f := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	})
	return f.Format(d)
}
