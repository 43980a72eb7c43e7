// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/judgment"
)

// Formatter implements CSV output formatting: one row per extracted field
// plus one row per validation flag, for spreadsheet review.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(result *judgment.Result, options formatters.FormatterOptions) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"Section", "Name", "Value"}}

	rec := result.Record
	rows = append(rows,
		[]string{"record", "case_number", strDeref(rec.CaseNumber)},
		[]string{"record", "document_type", string(rec.DocumentType)},
		[]string{"record", "court_type", rec.CourtType},
		[]string{"record", "husband_name", strDeref(rec.HusbandName)},
		[]string{"record", "wife_name", strDeref(rec.WifeName)},
		[]string{"record", "husband_income", floatDeref(rec.HusbandIncome)},
		[]string{"record", "nafkah_iddah_amount", floatDeref(rec.NafkahIddahAmount)},
		[]string{"record", "mutaah_amount", floatDeref(rec.MutaahAmount)},
		[]string{"record", "mutaah_lump_sum", floatDeref(rec.MutaahLumpSum)},
		[]string{"record", "marriage_duration_months", intDeref(rec.MarriageDurationMonths)},
		[]string{"record", "is_consent_order", strconv.FormatBool(rec.IsConsentOrder)},
		[]string{"confidence", "overall", fmt.Sprintf("%.4f", result.Confidence.Overall)},
		[]string{"metadata", "matched_template", result.Metadata.MatchedTemplate},
		[]string{"metadata", "detected_language", result.Metadata.DetectedLanguage},
		[]string{"metadata", "page_count", strconv.Itoa(result.Metadata.PageCount)},
	)

	for _, flag := range result.Flags {
		rows = append(rows, []string{"flag", string(flag.Severity) + ":" + flag.Type, flag.Message})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("formatting CSV: %w", err)
	}
	return buf.String(), nil
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatDeref(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intDeref(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
