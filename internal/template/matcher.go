// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package template scores document text against a catalogue of known
// document templates by keyword co-occurrence.
package template

import "strings"

// Template is a named document layout identified by a set of required
// keyword phrases.
type Template struct {
	Name     string
	Keywords []string
}

// DefaultCatalogue lists the known Syariah Court document templates. Order
// matters: ties resolve to the first-declared template.
func DefaultCatalogue() []Template {
	return []Template{
		{
			Name: "syariah_court_judgment",
			Keywords: []string{
				"syariah court",
				"grounds of decision",
				"nafkah iddah",
				"mutaah",
				"plaintiff",
				"defendant",
			},
		},
		{
			Name: "consent_order",
			Keywords: []string{
				"syariah court",
				"consent order",
				"by consent",
				"parties agree",
			},
		},
		{
			Name: "divorce_application",
			Keywords: []string{
				"originating summons",
				"application",
				"divorce",
				"registry",
			},
		},
	}
}

// Matcher scores text against a fixed catalogue. Stateless and safe for
// concurrent use.
type Matcher struct {
	catalogue []Template
}

// NewMatcher returns a matcher over the default catalogue.
func NewMatcher() *Matcher {
	return &Matcher{catalogue: DefaultCatalogue()}
}

// NewMatcherWithCatalogue returns a matcher over an explicit catalogue.
func NewMatcherWithCatalogue(catalogue []Template) *Matcher {
	return &Matcher{catalogue: catalogue}
}

// Match returns the best-scoring template name and its match ratio
// (keywords found / keywords in template) as confidence. When no keyword
// from any template appears, the template is "unknown" with confidence 0.
func (m *Matcher) Match(text string) (string, float64) {
	lower := strings.ToLower(text)

	bestName := "unknown"
	bestScore := 0.0

	for _, tpl := range m.catalogue {
		if len(tpl.Keywords) == 0 {
			continue
		}
		found := 0
		for _, kw := range tpl.Keywords {
			if strings.Contains(lower, kw) {
				found++
			}
		}
		score := float64(found) / float64(len(tpl.Keywords))
		// Strictly-greater keeps the first-declared template on ties.
		if score > bestScore {
			bestScore = score
			bestName = tpl.Name
		}
	}

	return bestName, bestScore
}
