// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchJudgmentTemplate(t *testing.T) {
	m := NewMatcher()
	name, score := m.Match(`IN THE SYARIAH COURT
GROUNDS OF DECISION
The Plaintiff claims nafkah iddah and mutaah from the Defendant.`)

	assert.Equal(t, "syariah_court_judgment", name)
	assert.Equal(t, 1.0, score, "all six keywords present")
}

func TestMatchPartialRatio(t *testing.T) {
	m := NewMatcher()
	name, score := m.Match("the syariah court heard the plaintiff and defendant")

	assert.Equal(t, "syariah_court_judgment", name)
	assert.InDelta(t, 0.5, score, 1e-9, "3 of 6 keywords present")
}

func TestMatchNothing(t *testing.T) {
	m := NewMatcher()
	name, score := m.Match("an unrelated shopping list")

	assert.Equal(t, "unknown", name)
	assert.Equal(t, 0.0, score)
}

func TestTieResolvesToFirstDeclared(t *testing.T) {
	catalogue := []Template{
		{Name: "first", Keywords: []string{"alpha", "beta"}},
		{Name: "second", Keywords: []string{"alpha", "gamma"}},
	}
	m := NewMatcherWithCatalogue(catalogue)
	name, score := m.Match("alpha appears alone")

	assert.Equal(t, "first", name)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestCaseInsensitiveKeywords(t *testing.T) {
	m := NewMatcher()
	name, _ := m.Match("CONSENT ORDER entered BY CONSENT; the PARTIES AGREE")

	assert.Equal(t, "consent_order", name)
}
