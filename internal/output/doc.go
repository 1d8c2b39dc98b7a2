// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders query results as text tables, JSON, YAML or the raw
// upstream payload, honoring the common filter/sort/attrs flags.
package output
