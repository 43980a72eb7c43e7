// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package entity extracts party names, identity numbers, and dates from
// judgment text. It runs independently of the main field extractor.
package entity

import (
	"regexp"

	"judgment-extract/internal/judgment"
)

// FixedConfidence is the entity-recognition stage score. It is reported
// regardless of how many entities were found; the score is intentionally
// simplistic.
const FixedConfidence = 0.7

type Recognizer struct {
	malePattern   *regexp.Regexp
	femalePattern *regexp.Regexp
	idPattern     *regexp.Regexp
	datePattern   *regexp.Regexp
}

// NewRecognizer compiles the entity pattern families.
func NewRecognizer() *Recognizer {
	const name = `[A-Z][a-z]+(?:\s[A-Z][a-z]+)*`
	return &Recognizer{
		// Malay naming convention: "<name> bin <father's name>" for men,
		// "<name> bte <father's name>" for women.
		malePattern:   regexp.MustCompile(`(` + name + `)\s+bin\s+(` + name + `)`),
		femalePattern: regexp.MustCompile(`(` + name + `)\s+bte\s+(` + name + `)`),
		idPattern:     regexp.MustCompile(`\b[STFG]\d{7}[A-Z]\b`),
		datePattern:   regexp.MustCompile(`\b(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})\b`),
	}
}

// Entities are the party facts recognized from one text.
type Entities struct {
	HusbandName *string
	WifeName    *string
	HusbandID   *string
	WifeID      *string
	OrderDate   *string
}

// Recognize extracts entities from text. First name match per gender wins;
// the first identity number found is assigned to the husband and the
// second to the wife. Returns the entities and the fixed stage confidence.
func (r *Recognizer) Recognize(text string) (Entities, float64) {
	var e Entities

	if m := r.malePattern.FindString(text); m != "" {
		e.HusbandName = judgment.String(m)
	}
	if m := r.femalePattern.FindString(text); m != "" {
		e.WifeName = judgment.String(m)
	}

	ids := r.idPattern.FindAllString(text, 2)
	if len(ids) > 0 {
		e.HusbandID = judgment.String(ids[0])
	}
	if len(ids) > 1 {
		e.WifeID = judgment.String(ids[1])
	}

	if m := r.datePattern.FindString(text); m != "" {
		e.OrderDate = judgment.String(m)
	}

	return e, FixedConfidence
}

// Apply copies recognized entities onto a record. Only unset record fields
// are written; the pattern extractor never sets these, so in practice this
// fills the party section of the merged record.
func (e Entities) Apply(rec *judgment.ExtractedRecord) {
	if rec.HusbandName == nil {
		rec.HusbandName = e.HusbandName
	}
	if rec.WifeName == nil {
		rec.WifeName = e.WifeName
	}
	if rec.HusbandID == nil {
		rec.HusbandID = e.HusbandID
	}
	if rec.WifeID == nil {
		rec.WifeID = e.WifeID
	}
	if rec.OrderDate == nil {
		rec.OrderDate = e.OrderDate
	}
}
