// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package language holds the keyword-count language heuristic used to tag
// processed documents.
package language

import "strings"

// The five Malay legal terms the heuristic counts.
var malayLegalTerms = []string{
	"mahkamah",    // court
	"plaintif",    // plaintiff
	"defendan",    // defendant
	"perkahwinan", // marriage
	"penghakiman", // judgment
}

const (
	// LanguageEnglish is the default tag for Singapore court documents.
	LanguageEnglish = "en-SG"
	// LanguageMalay is reported when the Malay term threshold is met.
	LanguageMalay = "ms-SG"

	minMalayTerms = 3
)

// Detect reports "ms-SG" when at least three of the five fixed Malay legal
// terms occur in the text, and "en-SG" otherwise.
func Detect(text string) string {
	lower := strings.ToLower(text)
	found := 0
	for _, term := range malayLegalTerms {
		if strings.Contains(lower, term) {
			found++
		}
	}
	if found >= minMalayTerms {
		return LanguageMalay
	}
	return LanguageEnglish
}
