// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Driller digs the value at a dotted path out of a JSON document. Path
// segments may carry an explicit [index]; a single-element array without one
// is drilled through transparently, while a multi-element array terminates
// the walk and is returned as-is.
func Driller(json string, path string) gjson.Result {
	current := gjson.Parse(json)
	if path == "" {
		return squash(current)
	}

	for _, segment := range strings.Split(path, ".") {
		key, index, indexed := splitIndex(segment)

		if current.IsArray() {
			arr := current.Array()
			if len(arr) != 1 {
				return current
			}
			current = arr[0]
		}

		current = current.Get(key)
		if !current.Exists() {
			return current
		}

		if indexed {
			if !current.IsArray() {
				return gjson.Result{}
			}
			arr := current.Array()
			if index < 0 || index >= len(arr) {
				return gjson.Result{}
			}
			current = arr[index]
		}
	}

	return squash(current)
}

// squash unwraps a single-element array at the end of the walk.
func squash(result gjson.Result) gjson.Result {
	if result.IsArray() {
		if arr := result.Array(); len(arr) == 1 {
			return arr[0]
		}
	}
	return result
}

// splitIndex peels a trailing [n] off a path segment.
func splitIndex(segment string) (key string, index int, ok bool) {
	open := strings.Index(segment, "[")
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}

	n, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return segment, 0, false
	}
	return segment[:open], n, true
}
