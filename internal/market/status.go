// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

// statusMessages maps response codes the market endpoints are known to return
// onto their meaning.
var statusMessages = map[int]string{
	400: "bad request",
	401: "unauthorized",
	403: "forbidden",
	404: "item not found",
	429: "request rate limit exceeded",
	500: "upstream internal server error",
	503: "upstream temporarily unavailable",
}

// statusError builds the StatusError for a non-200 code. Codes missing from
// the table get a generic message carrying the code.
func statusError(code int) *StatusError {
	msg, ok := statusMessages[code]
	if !ok {
		msg = "unsuccessful response"
	}
	return &StatusError{Code: code, Message: msg}
}
