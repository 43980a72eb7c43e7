// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package confidence combines per-stage confidence signals into one
// weighted overall score.
package confidence

import "judgment-extract/internal/judgment"

// Stage weights. A stage that did not run is excluded from both the
// numerator and the denominator; the remaining weights are renormalized
// over the present subset.
const (
	WeightExtraction = 0.30
	WeightOCR        = 0.20
	WeightEntity     = 0.20
	WeightTemplate   = 0.15
	WeightValidation = 0.15
)

// Aggregate computes the overall weighted score over whichever signals are
// present. With no signals present the overall confidence is 0.
func Aggregate(m judgment.ConfidenceMetrics) float64 {
	signals := []struct {
		value  *float64
		weight float64
	}{
		{m.Extraction, WeightExtraction},
		{m.OCR, WeightOCR},
		{m.EntityRecognition, WeightEntity},
		{m.TemplateMatching, WeightTemplate},
		{m.DataValidation, WeightValidation},
	}

	var totalWeight float64
	for _, s := range signals {
		if s.value != nil {
			totalWeight += s.weight
		}
	}
	if totalWeight == 0 {
		return 0
	}

	// Renormalize the weights before multiplying so that a single present
	// signal passes through exactly (weight/totalWeight is exactly 1).
	var sum float64
	for _, s := range signals {
		if s.value != nil {
			sum += *s.value * (s.weight / totalWeight)
		}
	}
	return sum
}
