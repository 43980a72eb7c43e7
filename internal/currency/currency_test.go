// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package currency

import (
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected float64
		found    bool
	}{
		{"plain integer", "1200", 1200, true},
		{"dollar prefix", "$1200", 1200, true},
		{"singapore dollar prefix", "S$2,500", 2500, true},
		{"sgd prefix", "SGD 3,000.00", 3000, true},
		{"comma thousands", "36,000", 36000, true},
		{"cents", "$1,234.56", 1234.56, true},
		{"surrounding whitespace", "  $750.00  ", 750, true},
		{"large grouped amount", "$1,234,567", 1234567, true},
		{"no digits", "no amount stated", 0, false},
		{"empty string", "", 0, false},
		{"symbol only", "$", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, found := Parse(tc.input)
			if found != tc.found {
				t.Fatalf("Parse(%q) found = %v, want %v", tc.input, found, tc.found)
			}
			if value != tc.expected {
				t.Errorf("Parse(%q) = %v, want %v", tc.input, value, tc.expected)
			}
		})
	}
}

func TestParseTakesFirstNumber(t *testing.T) {
	value, found := Parse("$500 per month and $20 per day")
	if !found || value != 500 {
		t.Errorf("expected first amount 500, got %v (found=%v)", value, found)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		input    float64
		expected float64
	}{
		{3.14159, 3.14},
		{36000.0 / 180.0, 200.00},
		{2916.666666, 2916.67},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.input); got != tc.expected {
			t.Errorf("Round2(%v) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}
