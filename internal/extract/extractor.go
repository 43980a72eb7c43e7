// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract implements the pattern extraction library: for each
// semantic field an ordered list of text patterns is tried against the
// document text, and the first pattern that matches and whose captured
// value parses wins. Later rules for a field are skipped once one
// succeeds, so no two rules can write conflicting values in one run.
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"judgment-extract/internal/currency"
	"judgment-extract/internal/judgment"
)

// Policy constants for deriving a daily mutaah rate when the text states
// the award some other way. Both are open domain questions (the statutory
// iddah period convention is unconfirmed), so they are configurable rather
// than hard-coded at the call sites.
const (
	// DefaultLumpSumDivisorDays converts a lump-sum mutaah award into a
	// daily rate.
	DefaultLumpSumDivisorDays = 180.0

	// DefaultMonthlyDivisorDays converts a monthly mutaah statement into a
	// daily rate.
	DefaultMonthlyDivisorDays = 30.0
)

// Base confidence parameters for the extraction stage: 0.6 plus 0.08 per
// successfully extracted core field, capped at 0.95.
const (
	baseConfidence    = 0.6
	perFieldIncrement = 0.08
	maxConfidence     = 0.95
)

// amountRule is one (pattern, handler) pair in a field's cascade. The
// handler converts the captured amount into the field value; returning
// false means the capture failed to parse and the next rule runs.
type amountRule struct {
	name    string
	re      *regexp.Regexp
	handler func(e *Extractor, captured string, rec *judgment.ExtractedRecord) bool
}

// Extractor runs the per-field pattern cascades. It is stateless across
// invocations and safe for concurrent use once constructed.
type Extractor struct {
	caseNumberRules []amountRule
	incomeRules     []amountRule
	nafkahRules     []amountRule
	mutaahRules     []amountRule
	durationRules   []amountRule

	consentKeywords []string
	courtPattern    *regexp.Regexp

	lumpSumDivisorDays float64
	monthlyDivisorDays float64
}

// NewExtractor returns an extractor using the default policy constants.
func NewExtractor() *Extractor {
	return NewExtractorWithPolicy(DefaultLumpSumDivisorDays, DefaultMonthlyDivisorDays)
}

// NewExtractorWithPolicy returns an extractor with explicit mutaah
// conversion divisors. Non-positive divisors fall back to the defaults.
func NewExtractorWithPolicy(lumpSumDays, monthlyDays float64) *Extractor {
	if lumpSumDays <= 0 {
		lumpSumDays = DefaultLumpSumDivisorDays
	}
	if monthlyDays <= 0 {
		monthlyDays = DefaultMonthlyDivisorDays
	}

	const amt = `([\d,]+(?:\.\d{1,2})?)`

	e := &Extractor{
		lumpSumDivisorDays: lumpSumDays,
		monthlyDivisorDays: monthlyDays,
		consentKeywords:    []string{"consent order", "parties agree", "by consent"},
		courtPattern:       regexp.MustCompile(`(?i)\bsyariah\s+court\b`),
	}

	e.caseNumberRules = []amountRule{
		{
			name:    "explicit_case_no",
			re:      regexp.MustCompile(`(?i)\bcase\s+(?:no|number)\.?\s*:?\s*([A-Z0-9][A-Z0-9/\-]*)`),
			handler: setCaseNumber,
		},
		{
			name:    "bracketed_citation",
			re:      regexp.MustCompile(`(\[\d{4}\]\s?[A-Z]{2,6}\s?\d+)`),
			handler: setCaseNumber,
		},
	}

	e.nafkahRules = []amountRule{
		{
			// The award phrase followed within ~120 characters by a
			// currency amount.
			name:    "nafkah_iddah_nearby_amount",
			re:      regexp.MustCompile(`(?is)nafkah\s+iddah.{0,120}?\$\s*` + amt),
			handler: setNafkahIddah,
		},
	}

	e.mutaahRules = []amountRule{
		{
			name:    "mutaah_per_day",
			re:      regexp.MustCompile(`(?is)mutaah.{0,120}?\$\s*` + amt + `\s*(?:per\s+day|a\s+day|daily)`),
			handler: setMutaahDaily,
		},
		{
			name:    "mutaah_per_month",
			re:      regexp.MustCompile(`(?is)mutaah.{0,120}?\$\s*` + amt + `\s*(?:per\s+month|a\s+month|monthly)`),
			handler: setMutaahMonthly,
		},
		{
			// A bare amount near the award phrase is treated as a lump sum
			// and converted to a daily rate.
			name:    "mutaah_lump_sum",
			re:      regexp.MustCompile(`(?is)mutaah.{0,120}?\$\s*` + amt),
			handler: setMutaahLumpSum,
		},
	}

	e.incomeRules = []amountRule{
		{
			name:    "income_monthly_near_party",
			re:      regexp.MustCompile(`(?is)(?:husband|plaintiff|defendant).{0,100}?(?:income|earn(?:s|ing)?|salary).{0,80}?\$\s*` + amt + `\s*(?:per\s+month|a\s+month|monthly)`),
			handler: setIncomeMonthly,
		},
		{
			name:    "income_monthly_statement",
			re:      regexp.MustCompile(`(?is)(?:monthly\s+income|income|salary)\s+(?:of|is|was)\s+\$\s*` + amt + `\s*(?:per\s+month|a\s+month|monthly)`),
			handler: setIncomeMonthly,
		},
		{
			name:    "income_annual_near_party",
			re:      regexp.MustCompile(`(?is)(?:husband|plaintiff|defendant).{0,100}?(?:income|earn(?:s|ing)?|salary).{0,80}?\$\s*` + amt + `\s*(?:per\s+annum|per\s+year|a\s+year|annually|yearly)`),
			handler: setIncomeAnnual,
		},
		{
			name:    "income_generic_monthly",
			re:      regexp.MustCompile(`(?is)about\s+\$\s*` + amt + `\s*(?:per\s+month|a\s+month|monthly)`),
			handler: setIncomeMonthly,
		},
	}

	e.durationRules = []amountRule{
		{
			// Only an explicit duration phrase counts; durations are never
			// inferred from dates.
			name:    "explicit_duration_years",
			re:      regexp.MustCompile(`(?is)duration\s+of\s+(?:the\s+)?marriage.{0,80}?(\d+(?:\.\d+)?)\s*years?`),
			handler: setMarriageDuration,
		},
	}

	return e
}

// Extract runs every field cascade over the text and returns the populated
// record together with the extraction-stage confidence. Extraction is
// deterministic: identical text yields an identical record and confidence.
func (e *Extractor) Extract(text string) (judgment.ExtractedRecord, float64) {
	rec := judgment.ExtractedRecord{DocumentType: judgment.DocTypeUnknown}

	e.runCascade(e.caseNumberRules, text, &rec)
	e.runCascade(e.incomeRules, text, &rec)
	e.runCascade(e.nafkahRules, text, &rec)
	e.runCascade(e.mutaahRules, text, &rec)
	e.runCascade(e.durationRules, text, &rec)

	lower := strings.ToLower(text)
	for _, kw := range e.consentKeywords {
		if strings.Contains(lower, kw) {
			rec.IsConsentOrder = true
			break
		}
	}

	rec.DocumentType = classifyDocumentType(lower)

	if e.courtPattern.MatchString(text) {
		rec.CourtType = "syariah_court"
	}

	return rec, e.stageConfidence(&rec)
}

// runCascade tries each rule in order and stops at the first one whose
// capture both matches and parses.
func (e *Extractor) runCascade(rules []amountRule, text string, rec *judgment.ExtractedRecord) {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		if rule.handler(e, m[1], rec) {
			return
		}
		// Parse failure: the field stays absent unless a later rule wins.
	}
}

// stageConfidence scores the extraction stage over the five core fields.
func (e *Extractor) stageConfidence(rec *judgment.ExtractedRecord) float64 {
	fields := 0
	if rec.HusbandIncome != nil {
		fields++
	}
	if rec.NafkahIddahAmount != nil {
		fields++
	}
	if rec.MutaahAmount != nil {
		fields++
	}
	if rec.CaseNumber != nil {
		fields++
	}
	if rec.MarriageDurationMonths != nil {
		fields++
	}
	return math.Min(maxConfidence, baseConfidence+perFieldIncrement*float64(fields))
}

func classifyDocumentType(lower string) judgment.DocumentType {
	families := []struct {
		docType  judgment.DocumentType
		keywords []string
	}{
		{judgment.DocTypeJudgment, []string{"grounds of decision", "judgment", "decree"}},
		{judgment.DocTypeConsentOrder, []string{"consent order"}},
		{judgment.DocTypeApplication, []string{"originating summons", "application", "summons"}},
		{judgment.DocTypeAffidavit, []string{"affidavit"}},
	}
	for _, fam := range families {
		for _, kw := range fam.keywords {
			if strings.Contains(lower, kw) {
				return fam.docType
			}
		}
	}
	return judgment.DocTypeUnknown
}

func setCaseNumber(_ *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	captured = strings.TrimSpace(captured)
	if captured == "" {
		return false
	}
	rec.CaseNumber = judgment.String(captured)
	return true
}

func setNafkahIddah(_ *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	v, ok := currency.Parse(captured)
	if !ok {
		return false
	}
	rec.NafkahIddahAmount = judgment.Float64(v)
	return true
}

func setMutaahDaily(_ *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	v, ok := currency.Parse(captured)
	if !ok {
		return false
	}
	rec.MutaahAmount = judgment.Float64(v)
	return true
}

func setMutaahMonthly(e *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	v, ok := currency.Parse(captured)
	if !ok {
		return false
	}
	rec.MutaahAmount = judgment.Float64(currency.Round2(v / e.monthlyDivisorDays))
	return true
}

func setMutaahLumpSum(e *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	v, ok := currency.Parse(captured)
	if !ok {
		return false
	}
	rec.MutaahLumpSum = judgment.Float64(v)
	rec.MutaahAmount = judgment.Float64(currency.Round2(v / e.lumpSumDivisorDays))
	return true
}

func setIncomeMonthly(_ *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	v, ok := currency.Parse(captured)
	if !ok {
		return false
	}
	rec.HusbandIncome = judgment.Float64(v)
	return true
}

func setIncomeAnnual(_ *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	v, ok := currency.Parse(captured)
	if !ok {
		return false
	}
	rec.HusbandIncome = judgment.Float64(currency.Round2(v / 12))
	return true
}

func setMarriageDuration(_ *Extractor, captured string, rec *judgment.ExtractedRecord) bool {
	years, err := strconv.ParseFloat(captured, 64)
	if err != nil {
		return false
	}
	months := int(math.Round(years * 12))
	rec.MarriageDurationMonths = judgment.Int(months)
	return true
}
