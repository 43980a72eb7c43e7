// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validate applies the business rules to a merged extracted record
// and emits validation flags plus a validation confidence. Rules are
// independent and all of them run on every pass; flags are append-only
// observations and never mutate the record.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"judgment-extract/internal/formula"
	"judgment-extract/internal/judgment"
)

// Rule thresholds and confidence arithmetic. Validation confidence starts
// at the base and is only ever decreased; it is clamped at 0 when multiple
// rules fire.
const (
	baseConfidence   = 0.9
	schemaPenalty    = 0.2 // applied once per pass, not per violation
	deviationPenalty = 0.1
	DefaultTolerance = 50.0
	HighIncomeCutoff = 10000.0
)

// Validator checks merged records. Construct one explicitly and share it;
// it holds no per-call state.
type Validator struct {
	schema    *jsonschema.Schema
	tolerance float64
	strict    bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithTolerance overrides the formula-deviation tolerance in dollars.
func WithTolerance(dollars float64) Option {
	return func(v *Validator) {
		if dollars > 0 {
			v.tolerance = dollars
		}
	}
}

// WithStrict enables the strict rules: records with no financial facts and
// records missing a case number are flagged.
func WithStrict(strict bool) Option {
	return func(v *Validator) { v.strict = strict }
}

// New compiles the record schema and returns a validator.
func New(opts ...Option) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", strings.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("add record schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}

	v := &Validator{
		schema:    schema,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate runs every rule against the record and returns the flags plus
// the validation confidence in [0, baseConfidence].
func (v *Validator) Validate(rec *judgment.ExtractedRecord) ([]judgment.ValidationFlag, float64) {
	var flags []judgment.ValidationFlag
	conf := baseConfidence

	if schemaFlags := v.checkSchema(rec); len(schemaFlags) > 0 {
		flags = append(flags, schemaFlags...)
		conf -= schemaPenalty
	}

	if rec.HusbandIncome != nil && *rec.HusbandIncome > HighIncomeCutoff {
		flags = append(flags, judgment.ValidationFlag{
			Type:     judgment.FlagHighIncome,
			Severity: judgment.SeverityMedium,
			Message:  fmt.Sprintf("husband income $%.2f is unusually high, verify", *rec.HusbandIncome),
		})
	}

	if rec.HusbandIncome != nil && *rec.HusbandIncome > formula.SalaryCap {
		flags = append(flags, judgment.ValidationFlag{
			Type:     judgment.FlagOutOfFormulaScope,
			Severity: judgment.SeverityMedium,
			Message:  fmt.Sprintf("husband income $%.2f exceeds the $%.0f formula cap; route to manual legal review", *rec.HusbandIncome, formula.SalaryCap),
		})
	}

	if rec.HusbandIncome != nil && rec.NafkahIddahAmount != nil {
		// The expected value is the engine's raw linear formula so this
		// check can never diverge from the standalone engine.
		expected := formula.ExpectedNafkahIddah(*rec.HusbandIncome)
		if math.Abs(*rec.NafkahIddahAmount-expected) > v.tolerance {
			flags = append(flags, judgment.ValidationFlag{
				Type:        judgment.FlagFormulaDeviation,
				Severity:    judgment.SeverityHigh,
				AutoFixable: true,
				Message: fmt.Sprintf("extracted nafkah iddah $%.2f deviates from the formula expectation $%.2f by more than $%.0f",
					*rec.NafkahIddahAmount, expected, v.tolerance),
			})
			conf -= deviationPenalty
		}
	}

	if rec.IsConsentOrder {
		flags = append(flags, judgment.ValidationFlag{
			Type:     judgment.FlagConsentOrder,
			Severity: judgment.SeverityLow,
			Message:  "consent order: exclude from formula calibration datasets",
		})
	}

	if v.strict {
		if !rec.ContainsFinancialData() {
			flags = append(flags, judgment.ValidationFlag{
				Type:     judgment.FlagNoFinancialData,
				Severity: judgment.SeverityMedium,
				Message:  "no financial facts were extracted from the document",
			})
		}
		if rec.CaseNumber == nil {
			flags = append(flags, judgment.ValidationFlag{
				Type:     judgment.FlagMissingCaseNumber,
				Severity: judgment.SeverityLow,
				Message:  "no case number was extracted from the document",
			})
		}
	}

	if conf < 0 {
		conf = 0
	}
	return flags, conf
}

// checkSchema validates the record shape against the embedded JSON schema
// and returns one error flag per offending field.
func (v *Validator) checkSchema(rec *judgment.ExtractedRecord) []judgment.ValidationFlag {
	data, err := json.Marshal(rec)
	if err != nil {
		return []judgment.ValidationFlag{{
			Type:     judgment.FlagSchemaViolation,
			Severity: judgment.SeverityHigh,
			Message:  fmt.Sprintf("record could not be serialized for schema validation: %v", err),
		}}
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return []judgment.ValidationFlag{{
			Type:     judgment.FlagSchemaViolation,
			Severity: judgment.SeverityHigh,
			Message:  fmt.Sprintf("record could not be decoded for schema validation: %v", err),
		}}
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var flags []judgment.ValidationFlag
	if ve, ok := err.(*jsonschema.ValidationError); ok {
		for _, cause := range leafCauses(ve) {
			flags = append(flags, judgment.ValidationFlag{
				Type:     judgment.FlagSchemaViolation,
				Severity: judgment.SeverityHigh,
				Message:  fmt.Sprintf("field %q: %s", instanceField(cause), cause.Message),
			})
		}
		return flags
	}

	return []judgment.ValidationFlag{{
		Type:     judgment.FlagSchemaViolation,
		Severity: judgment.SeverityHigh,
		Message:  err.Error(),
	}}
}

// leafCauses flattens a validation error tree into its leaf causes, one
// per offending field.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}

func instanceField(ve *jsonschema.ValidationError) string {
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return "record"
	}
	return loc
}
