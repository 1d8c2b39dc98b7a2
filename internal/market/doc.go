// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package market queries the Steam Community Market price overview endpoint
// and a bulk aggregate price provider, with optional disk caching through
// pricestore and a minimum-interval gate on aggregate refreshes.
package market
