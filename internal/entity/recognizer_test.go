// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"testing"
)

const partyText = `
BETWEEN

Ahmad Syafiq bin Rahman (NRIC S1234567D)
... Plaintiff

AND

Nur Aisyah bte Ismail (NRIC S7654321B)
... Defendant

Order made on 12 March 2023.
`

func TestRecognizeParties(t *testing.T) {
	r := NewRecognizer()
	e, conf := r.Recognize(partyText)

	if e.HusbandName == nil || *e.HusbandName != "Ahmad Syafiq bin Rahman" {
		t.Errorf("husband name = %v, want Ahmad Syafiq bin Rahman", e.HusbandName)
	}
	if e.WifeName == nil || *e.WifeName != "Nur Aisyah bte Ismail" {
		t.Errorf("wife name = %v, want Nur Aisyah bte Ismail", e.WifeName)
	}
	if e.HusbandID == nil || *e.HusbandID != "S1234567D" {
		t.Errorf("husband id = %v, want S1234567D", e.HusbandID)
	}
	if e.WifeID == nil || *e.WifeID != "S7654321B" {
		t.Errorf("wife id = %v, want S7654321B", e.WifeID)
	}
	if e.OrderDate == nil || *e.OrderDate != "12 March 2023" {
		t.Errorf("order date = %v, want 12 March 2023", e.OrderDate)
	}
	if conf != FixedConfidence {
		t.Errorf("confidence = %v, want %v", conf, FixedConfidence)
	}
}

func TestFixedConfidenceWhenNothingFound(t *testing.T) {
	r := NewRecognizer()
	e, conf := r.Recognize("no parties mentioned here")

	if e.HusbandName != nil || e.WifeName != nil || e.HusbandID != nil || e.WifeID != nil || e.OrderDate != nil {
		t.Error("expected no entities from unrelated text")
	}
	if conf != FixedConfidence {
		t.Errorf("confidence = %v, want fixed %v regardless of entity count", conf, FixedConfidence)
	}
}

func TestFirstNameMatchWins(t *testing.T) {
	r := NewRecognizer()
	e, _ := r.Recognize("Hassan bin Omar appeared; later Yusof bin Salleh testified")

	if e.HusbandName == nil || *e.HusbandName != "Hassan bin Omar" {
		t.Errorf("husband name = %v, want first match Hassan bin Omar", e.HusbandName)
	}
}

func TestIDAssignmentOrder(t *testing.T) {
	r := NewRecognizer()
	e, _ := r.Recognize("IDs on file: T0011223Z then G9988776A then S5544332K")

	if e.HusbandID == nil || *e.HusbandID != "T0011223Z" {
		t.Errorf("husband id = %v, want first found T0011223Z", e.HusbandID)
	}
	if e.WifeID == nil || *e.WifeID != "G9988776A" {
		t.Errorf("wife id = %v, want second found G9988776A", e.WifeID)
	}
}
