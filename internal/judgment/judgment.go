// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package judgment defines the shared result types produced by the
// extraction pipeline: the extracted record, per-stage confidence
// metrics, validation flags, and the processing result envelope.
package judgment

// DocumentType classifies the kind of court document a text was taken from.
type DocumentType string

const (
	DocTypeJudgment     DocumentType = "judgment"
	DocTypeConsentOrder DocumentType = "consent_order"
	DocTypeApplication  DocumentType = "application"
	DocTypeAffidavit    DocumentType = "affidavit"
	DocTypeUnknown      DocumentType = "unknown"
)

// Severity grades a validation flag.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Flag types emitted by the validator and the orchestrator.
const (
	FlagAcquisitionFailure = "acquisition_failure"
	FlagSchemaViolation    = "schema_violation"
	FlagHighIncome         = "high_income"
	FlagFormulaDeviation   = "formula_deviation"
	FlagOutOfFormulaScope  = "out_of_formula_scope"
	FlagConsentOrder       = "consent_order"
	FlagNoFinancialData    = "no_financial_data"
	FlagMissingCaseNumber  = "missing_case_number"
)

// ExtractedRecord is the canonical output of extraction. Optional fields
// are pointers and are nil when the fact was not found in the text. All
// numeric financial facts are non-negative when present.
type ExtractedRecord struct {
	// Identifiers
	CaseNumber   *string      `json:"case_number,omitempty"`
	CourtType    string       `json:"court_type,omitempty"`
	DocumentType DocumentType `json:"document_type"`

	// Parties
	HusbandName *string `json:"husband_name,omitempty"`
	WifeName    *string `json:"wife_name,omitempty"`
	HusbandID   *string `json:"husband_id,omitempty"`
	WifeID      *string `json:"wife_id,omitempty"`
	OrderDate   *string `json:"order_date,omitempty"`

	// Financial facts
	HusbandIncome          *float64 `json:"husband_income,omitempty"`
	NafkahIddahAmount      *float64 `json:"nafkah_iddah_amount,omitempty"` // monthly
	MutaahAmount           *float64 `json:"mutaah_amount,omitempty"`       // daily
	MutaahLumpSum          *float64 `json:"mutaah_lump_sum,omitempty"`     // set when the daily rate was derived from a lump sum
	MarriageDurationMonths *int     `json:"marriage_duration_months,omitempty"`

	// Classification
	IsConsentOrder bool `json:"is_consent_order"`
}

// ContainsFinancialData reports whether any financial fact was extracted.
func (r *ExtractedRecord) ContainsFinancialData() bool {
	return r.HusbandIncome != nil ||
		r.NafkahIddahAmount != nil ||
		r.MutaahAmount != nil ||
		r.MarriageDurationMonths != nil
}

// ConfidenceMetrics holds the per-stage confidence signals, each in [0,1].
// A nil signal means the stage did not run and is excluded from the
// overall weighted mean.
type ConfidenceMetrics struct {
	Extraction        *float64 `json:"extraction,omitempty"`
	OCR               *float64 `json:"ocr,omitempty"`
	EntityRecognition *float64 `json:"entity_recognition,omitempty"`
	TemplateMatching  *float64 `json:"template_matching,omitempty"`
	DataValidation    *float64 `json:"data_validation,omitempty"`

	// Overall is the weighted mean over the signals that are present.
	Overall float64 `json:"overall"`
}

// ValidationFlag is an append-only observation about a record. Flags never
// mutate the record they describe.
type ValidationFlag struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	AutoFixable bool     `json:"auto_fixable"`
}

// Metadata describes the processed document rather than its contents.
type Metadata struct {
	PageCount        int            `json:"page_count"`
	DetectedLanguage string         `json:"detected_language"`
	MatchedTemplate  string         `json:"matched_template"`
	SourceFormat     string         `json:"source_format,omitempty"`
	ImageMeta        map[string]any `json:"image_meta,omitempty"`
}

// Result is the single structured output of one document-processing
// invocation.
type Result struct {
	Record     ExtractedRecord   `json:"record"`
	Confidence ConfidenceMetrics `json:"confidence"`
	Flags      []ValidationFlag  `json:"flags"`
	Metadata   Metadata          `json:"metadata"`
}

// Float64 returns a pointer to v. Convenience for building optional fields.
func Float64(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
