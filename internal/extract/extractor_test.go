// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"reflect"
	"testing"

	"judgment-extract/internal/judgment"
)

const sampleJudgment = `
IN THE SYARIAH COURT OF THE REPUBLIC OF SINGAPORE

Case No: OS/123456/2023

GROUNDS OF DECISION

The marriage was registered on 14 March 2008. The duration of the marriage
was 15 years. The Plaintiff stated that the Defendant husband earns a salary
of $3,200 per month as a technician.

The Court orders the Defendant to pay nafkah iddah of $450 per month for the
iddah period, and mutaah of $4 per day.
`

func float64Value(t *testing.T, p *float64, field string) float64 {
	t.Helper()
	if p == nil {
		t.Fatalf("expected %s to be extracted", field)
	}
	return *p
}

func TestExtractFullJudgment(t *testing.T) {
	e := NewExtractor()
	rec, conf := e.Extract(sampleJudgment)

	if rec.CaseNumber == nil || *rec.CaseNumber != "OS/123456/2023" {
		t.Errorf("case number = %v, want OS/123456/2023", rec.CaseNumber)
	}
	if got := float64Value(t, rec.HusbandIncome, "husband income"); got != 3200 {
		t.Errorf("husband income = %v, want 3200", got)
	}
	if got := float64Value(t, rec.NafkahIddahAmount, "nafkah iddah"); got != 450 {
		t.Errorf("nafkah iddah = %v, want 450", got)
	}
	if got := float64Value(t, rec.MutaahAmount, "mutaah"); got != 4 {
		t.Errorf("mutaah daily = %v, want 4", got)
	}
	if rec.MarriageDurationMonths == nil || *rec.MarriageDurationMonths != 180 {
		t.Errorf("marriage duration = %v, want 180 months", rec.MarriageDurationMonths)
	}
	if rec.DocumentType != judgment.DocTypeJudgment {
		t.Errorf("document type = %v, want judgment", rec.DocumentType)
	}
	if rec.CourtType != "syariah_court" {
		t.Errorf("court type = %q, want syariah_court", rec.CourtType)
	}
	if rec.IsConsentOrder {
		t.Error("record should not be marked as consent order")
	}

	// All five core fields extracted: min(0.95, 0.6 + 0.08*5) = 0.95.
	if conf != 0.95 {
		t.Errorf("extraction confidence = %v, want 0.95", conf)
	}
}

func TestExtractionDeterminism(t *testing.T) {
	e := NewExtractor()
	rec1, conf1 := e.Extract(sampleJudgment)
	rec2, conf2 := e.Extract(sampleJudgment)
	if !reflect.DeepEqual(rec1, rec2) {
		t.Error("two runs over identical text produced different records")
	}
	if conf1 != conf2 {
		t.Errorf("confidence differs between runs: %v vs %v", conf1, conf2)
	}
}

func TestCaseNumberBracketedFallback(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("as reported in [2023] SYC 14, the court held")
	if rec.CaseNumber == nil || *rec.CaseNumber != "[2023] SYC 14" {
		t.Errorf("case number = %v, want [2023] SYC 14", rec.CaseNumber)
	}
}

func TestCaseNumberExplicitWinsOverCitation(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("Case No: 45678 cited as [2023] SYC 14")
	if rec.CaseNumber == nil || *rec.CaseNumber != "45678" {
		t.Errorf("case number = %v, want 45678 (explicit phrasing wins)", rec.CaseNumber)
	}
}

func TestMutaahQualifierPriority(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected float64
		lumpSum  *float64
	}{
		{"per day explicit", "mutaah of $5 per day", 5, nil},
		{"a day phrasing", "mutaah at $3 a day", 3, nil},
		{"monthly divided by 30", "mutaah of $150 per month", 5, nil},
		{"lump sum divided by 180", "mutaah of $36,000", 200, judgment.Float64(36000)},
		{"day qualifier preferred over later lump sum", "mutaah of $36,000 being $4 per day", 4, nil},
	}

	e := NewExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := e.Extract(tc.text)
			if rec.MutaahAmount == nil {
				t.Fatal("expected mutaah to be extracted")
			}
			if *rec.MutaahAmount != tc.expected {
				t.Errorf("mutaah = %v, want %v", *rec.MutaahAmount, tc.expected)
			}
			if tc.lumpSum == nil && rec.MutaahLumpSum != nil {
				t.Errorf("unexpected lump sum %v", *rec.MutaahLumpSum)
			}
			if tc.lumpSum != nil && (rec.MutaahLumpSum == nil || *rec.MutaahLumpSum != *tc.lumpSum) {
				t.Errorf("lump sum = %v, want %v", rec.MutaahLumpSum, *tc.lumpSum)
			}
		})
	}
}

func TestNafkahZeroAwardIsPresent(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("the court awards nafkah iddah of $0 and mutaah of $36,000")
	if rec.NafkahIddahAmount == nil || *rec.NafkahIddahAmount != 0 {
		t.Errorf("nafkah = %v, want present with value 0", rec.NafkahIddahAmount)
	}
	if rec.MutaahAmount == nil || *rec.MutaahAmount != 200 {
		t.Errorf("mutaah = %v, want 200 (36000/180)", rec.MutaahAmount)
	}
}

func TestIncomeAnnualFallback(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("the husband declared an income of $54,000 per annum")
	if rec.HusbandIncome == nil || *rec.HusbandIncome != 4500 {
		t.Errorf("income = %v, want 4500 (54000/12)", rec.HusbandIncome)
	}
}

func TestIncomeGenericPhrasing(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("he takes home about $2,800 per month from odd jobs")
	if rec.HusbandIncome == nil || *rec.HusbandIncome != 2800 {
		t.Errorf("income = %v, want 2800", rec.HusbandIncome)
	}
}

func TestDurationRequiresExplicitPhrase(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("married on 1 January 2005, divorced on 1 January 2020")
	if rec.MarriageDurationMonths != nil {
		t.Errorf("duration = %v, want absent (never inferred from dates)", *rec.MarriageDurationMonths)
	}
}

func TestDurationFractionalYears(t *testing.T) {
	e := NewExtractor()
	rec, _ := e.Extract("the duration of the marriage was 7.5 years")
	if rec.MarriageDurationMonths == nil || *rec.MarriageDurationMonths != 90 {
		t.Errorf("duration = %v, want 90 months", rec.MarriageDurationMonths)
	}
}

func TestConsentOrderKeywords(t *testing.T) {
	for _, text := range []string{
		"this is a CONSENT ORDER entered by the court",
		"the parties agree to the following terms",
		"judgment entered by consent",
	} {
		e := NewExtractor()
		rec, _ := e.Extract(text)
		if !rec.IsConsentOrder {
			t.Errorf("expected consent order for %q", text)
		}
	}
}

func TestDocumentTypePriority(t *testing.T) {
	cases := []struct {
		text     string
		expected judgment.DocumentType
	}{
		{"GROUNDS OF DECISION in the consent order matter", judgment.DocTypeJudgment},
		{"consent order filed with the application", judgment.DocTypeConsentOrder},
		{"ORIGINATING SUMMONS No 99", judgment.DocTypeApplication},
		{"affidavit of the plaintiff", judgment.DocTypeAffidavit},
		{"unrelated correspondence", judgment.DocTypeUnknown},
	}
	e := NewExtractor()
	for _, tc := range cases {
		rec, _ := e.Extract(tc.text)
		if rec.DocumentType != tc.expected {
			t.Errorf("document type for %q = %v, want %v", tc.text, rec.DocumentType, tc.expected)
		}
	}
}

func TestEmptyTextBaseConfidence(t *testing.T) {
	e := NewExtractor()
	rec, conf := e.Extract("")
	if rec.ContainsFinancialData() {
		t.Error("empty text should extract no financial data")
	}
	if conf != 0.6 {
		t.Errorf("base confidence = %v, want 0.6", conf)
	}
}

func TestCustomLumpSumDivisor(t *testing.T) {
	e := NewExtractorWithPolicy(90, 30)
	rec, _ := e.Extract("mutaah of $36,000")
	if rec.MutaahAmount == nil || *rec.MutaahAmount != 400 {
		t.Errorf("mutaah = %v, want 400 (36000/90)", rec.MutaahAmount)
	}
}
