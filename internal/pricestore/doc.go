// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package pricestore persists item price quotes as a single JSON document on
// disk. The document is loaded on every access rather than held resident, and
// each write replaces it wholesale.
package pricestore
