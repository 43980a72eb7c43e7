// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package currency parses free-form monetary and numeric fragments into
// canonical decimal values.
package currency

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// digitsPattern pulls the numeric portion out of a fragment: optional
// comma-grouped thousands and optional cents.
var digitsPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?`)

// Parse extracts a canonical decimal value from a text fragment that may
// contain a currency symbol, comma thousands separators, optional cents,
// and surrounding whitespace. The second return value is false when the
// fragment holds no parseable digits. Parse never returns NaN or Inf; any
// such intermediate value is treated as not found.
func Parse(fragment string) (float64, bool) {
	s := strings.TrimSpace(fragment)
	if s == "" {
		return 0, false
	}

	// Strip common currency markers so "S$ 1,200.50" and "$1200" both parse.
	s = strings.NewReplacer("S$", "", "SGD", "", "$", "").Replace(s)

	match := digitsPattern.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

// Round2 rounds to two decimal places, the convention used for derived
// monthly and daily rates.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
