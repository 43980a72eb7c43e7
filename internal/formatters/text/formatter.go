// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/judgment"
)

// Formatter implements human-readable text output with colors.
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result *judgment.Result, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var sb strings.Builder

	sb.WriteString(f.colors["white"].Sprint("Extracted record"))
	sb.WriteString("\n")
	rec := result.Record
	f.writeField(&sb, "Case number", strDeref(rec.CaseNumber))
	f.writeField(&sb, "Document type", string(rec.DocumentType))
	f.writeField(&sb, "Court type", rec.CourtType)
	f.writeField(&sb, "Husband", partyLine(rec.HusbandName, rec.HusbandID))
	f.writeField(&sb, "Wife", partyLine(rec.WifeName, rec.WifeID))
	f.writeField(&sb, "Husband income", money(rec.HusbandIncome, "/month"))
	f.writeField(&sb, "Nafkah iddah", money(rec.NafkahIddahAmount, "/month"))
	f.writeField(&sb, "Mutaah", money(rec.MutaahAmount, "/day"))
	if rec.MutaahLumpSum != nil {
		f.writeField(&sb, "Mutaah lump sum", money(rec.MutaahLumpSum, ""))
	}
	if rec.MarriageDurationMonths != nil {
		f.writeField(&sb, "Marriage duration", fmt.Sprintf("%d months", *rec.MarriageDurationMonths))
	}
	f.writeField(&sb, "Consent order", fmt.Sprintf("%v", rec.IsConsentOrder))

	sb.WriteString("\n")
	sb.WriteString(f.colors["white"].Sprint("Confidence"))
	sb.WriteString("\n")
	f.writeField(&sb, "Overall", f.confidenceValue(result.Confidence.Overall))
	if options.Verbose {
		f.writeSignal(&sb, "Extraction", result.Confidence.Extraction)
		f.writeSignal(&sb, "OCR", result.Confidence.OCR)
		f.writeSignal(&sb, "Entity recognition", result.Confidence.EntityRecognition)
		f.writeSignal(&sb, "Template matching", result.Confidence.TemplateMatching)
		f.writeSignal(&sb, "Data validation", result.Confidence.DataValidation)
	}

	if len(result.Flags) > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.colors["white"].Sprintf("Flags (%d)", len(result.Flags)))
		sb.WriteString("\n")
		for _, flag := range result.Flags {
			c := f.severityColor(flag.Severity)
			fixable := ""
			if flag.AutoFixable {
				fixable = " [auto-fixable]"
			}
			sb.WriteString(fmt.Sprintf("  %s %s: %s%s\n",
				c.Sprintf("[%s]", strings.ToUpper(string(flag.Severity))), flag.Type, flag.Message, fixable))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(f.colors["white"].Sprint("Metadata"))
	sb.WriteString("\n")
	f.writeField(&sb, "Pages", fmt.Sprintf("%d", result.Metadata.PageCount))
	f.writeField(&sb, "Language", result.Metadata.DetectedLanguage)
	f.writeField(&sb, "Template", result.Metadata.MatchedTemplate)
	if options.Verbose && len(result.Metadata.ImageMeta) > 0 {
		for k, v := range result.Metadata.ImageMeta {
			f.writeField(&sb, "Image "+k, fmt.Sprintf("%v", v))
		}
	}

	return sb.String(), nil
}

func (f *Formatter) writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		value = f.colors["yellow"].Sprint("(not found)")
	}
	fmt.Fprintf(sb, "  %-20s %s\n", label+":", value)
}

func (f *Formatter) writeSignal(sb *strings.Builder, label string, value *float64) {
	if value == nil {
		f.writeField(sb, label, f.colors["yellow"].Sprint("(absent)"))
		return
	}
	f.writeField(sb, label, f.confidenceValue(*value))
}

// confidenceValue colors a score green/yellow/red by band.
func (f *Formatter) confidenceValue(v float64) string {
	text := fmt.Sprintf("%.2f", v)
	switch {
	case v >= 0.8:
		return f.colors["green"].Sprint(text)
	case v >= 0.5:
		return f.colors["yellow"].Sprint(text)
	default:
		return f.colors["red"].Sprint(text)
	}
}

func (f *Formatter) severityColor(s judgment.Severity) *color.Color {
	switch s {
	case judgment.SeverityHigh:
		return f.colors["red"]
	case judgment.SeverityMedium:
		return f.colors["yellow"]
	default:
		return f.colors["cyan"]
	}
}

func partyLine(name, id *string) string {
	switch {
	case name == nil && id == nil:
		return ""
	case id == nil:
		return *name
	case name == nil:
		return *id
	default:
		return fmt.Sprintf("%s (%s)", *name, *id)
	}
}

func money(v *float64, suffix string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("$%.2f%s", *v, suffix)
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
