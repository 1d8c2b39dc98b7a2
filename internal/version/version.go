// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version holds the build version stamped in at link time.
package version

// Version is overridden via -ldflags at release build time.
var Version = "dev"
