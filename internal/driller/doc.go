// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller extracts values from upstream price documents by dotted
// path, with forgiving traversal of single-element arrays and explicit
// [index] access.
package driller
