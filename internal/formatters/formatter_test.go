// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/judgment"

	_ "judgment-extract/internal/formatters/csv"
	_ "judgment-extract/internal/formatters/json"
	_ "judgment-extract/internal/formatters/text"
	_ "judgment-extract/internal/formatters/yaml"
)

func sampleResult() *judgment.Result {
	return &judgment.Result{
		Record: judgment.ExtractedRecord{
			CaseNumber:        judgment.String("OS/54321/2023"),
			DocumentType:      judgment.DocTypeJudgment,
			CourtType:         "syariah_court",
			HusbandIncome:     judgment.Float64(2000),
			NafkahIddahAmount: judgment.Float64(330),
			MutaahAmount:      judgment.Float64(3),
		},
		Confidence: judgment.ConfidenceMetrics{
			Extraction:     judgment.Float64(0.9),
			DataValidation: judgment.Float64(0.9),
			Overall:        0.9,
		},
		Flags: []judgment.ValidationFlag{
			{Type: judgment.FlagConsentOrder, Severity: judgment.SeverityLow, Message: "order was made by consent"},
		},
		Metadata: judgment.Metadata{
			PageCount:        3,
			DetectedLanguage: "en-SG",
			MatchedTemplate:  "syariah_court_judgment",
		},
	}
}

func TestRegistryListsAllFormats(t *testing.T) {
	names := formatters.List()
	for _, want := range []string{"text", "json", "yaml", "csv"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("formatter %q not registered (have %v)", want, names)
		}
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if _, err := formatters.Export("xml", sampleResult(), formatters.FormatterOptions{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	out, err := formatters.Export("json", sampleResult(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var decoded judgment.Result
	if err := gojson.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Record.CaseNumber == nil || *decoded.Record.CaseNumber != "OS/54321/2023" {
		t.Error("case number lost in JSON output")
	}
	if decoded.Confidence.Overall != 0.9 {
		t.Errorf("expected overall confidence 0.9, got %v", decoded.Confidence.Overall)
	}
}

func TestExportTextContainsRecordFields(t *testing.T) {
	out, err := formatters.Export("text", sampleResult(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{"OS/54321/2023", "$330.00/month", "$3.00/day", "consent_order", "en-SG"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSVHasHeader(t *testing.T) {
	out, err := formatters.Export("csv", sampleResult(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "Section,Name,Value") {
		t.Errorf("csv output missing header:\n%s", out)
	}
}
