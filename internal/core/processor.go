// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core orchestrates one document-processing run: text acquisition,
// the three extraction stages, validation, and confidence aggregation.
package core

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"judgment-extract/internal/acquire"
	"judgment-extract/internal/confidence"
	"judgment-extract/internal/entity"
	"judgment-extract/internal/extract"
	"judgment-extract/internal/judgment"
	"judgment-extract/internal/language"
	"judgment-extract/internal/observability"
	"judgment-extract/internal/template"
	"judgment-extract/internal/validate"
)

// Options are the processing flags for one processor instance.
type Options struct {
	EnableOCR               bool
	EnableTemplateMatching  bool
	EnableEntityRecognition bool
	StrictValidation        bool
}

// DefaultOptions enables every stage except strict validation.
func DefaultOptions() Options {
	return Options{
		EnableOCR:               true,
		EnableTemplateMatching:  true,
		EnableEntityRecognition: true,
		StrictValidation:        false,
	}
}

// Input identifies the document to process: either an already-decoded text
// buffer, or a file path routed through the text acquirer. When the text
// of a scanned document was produced by the external OCR collaborator, the
// collaborator's reported confidence rides along.
type Input struct {
	Text          string
	FilePath      string
	OCRConfidence *float64
}

// ProcessorConfig collects the policy knobs and collaborators a processor
// is built from. Zero values fall back to defaults.
type ProcessorConfig struct {
	Options            Options
	LumpSumDivisorDays float64
	MonthlyDivisorDays float64
	DeviationTolerance float64
	Observer           *observability.StandardObserver
	Acquirer           acquire.Acquirer
}

// Processor runs the extraction pipeline. All held services are stateless;
// a processor is safe for concurrent use across documents.
type Processor struct {
	options    Options
	extractor  *extract.Extractor
	matcher    *template.Matcher
	recognizer *entity.Recognizer
	validator  *validate.Validator
	acquirer   acquire.Acquirer
	observer   *observability.StandardObserver
}

// NewProcessor constructs the pipeline services explicitly; there is no
// shared global state between processors.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	validator, err := validate.New(
		validate.WithStrict(cfg.Options.StrictValidation),
		validate.WithTolerance(cfg.DeviationTolerance),
	)
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	acquirer := cfg.Acquirer
	if acquirer == nil {
		acquirer = acquire.NewFileAcquirer(cfg.Observer)
	}

	return &Processor{
		options:    cfg.Options,
		extractor:  extract.NewExtractorWithPolicy(cfg.LumpSumDivisorDays, cfg.MonthlyDivisorDays),
		matcher:    template.NewMatcher(),
		recognizer: entity.NewRecognizer(),
		validator:  validator,
		acquirer:   acquirer,
		observer:   cfg.Observer,
	}, nil
}

// Process runs the full pipeline for one document and always returns a
// complete, well-typed result: every failure mode other than acquisition
// is recorded as flags and degraded confidence rather than an error.
func (p *Processor) Process(ctx context.Context, input Input) *judgment.Result {
	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("processor", "process_document", input.FilePath)
	}

	var debug *observability.DebugObserver
	if p.observer != nil {
		debug = p.observer.DebugObserver
	}

	text, meta, ok := p.acquireText(input)
	if !ok {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"acquisition_failure": true})
		}
		return acquisitionFailureResult(input.FilePath, meta)
	}

	meta.DetectedLanguage = language.Detect(text)

	var finishStages func(success bool, details string)
	if debug != nil {
		finishStages = debug.StartStep("processor", "run_stages", meta.SourceFormat)
	}

	// The three extractors are independent and run concurrently over the
	// same immutable buffer. The group wait is a join barrier: validation
	// only ever sees the fully merged record.
	var (
		rec          judgment.ExtractedRecord
		extConf      float64
		entities     entity.Entities
		entityConf   *float64
		templateConf *float64
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, extConf = p.extractor.Extract(text)
		return nil
	})
	if p.options.EnableTemplateMatching {
		g.Go(func() error {
			name, score := p.matcher.Match(text)
			meta.MatchedTemplate = name
			templateConf = judgment.Float64(score)
			return nil
		})
	} else {
		meta.MatchedTemplate = "unknown"
	}
	if p.options.EnableEntityRecognition {
		g.Go(func() error {
			var score float64
			entities, score = p.recognizer.Recognize(text)
			entityConf = judgment.Float64(score)
			return nil
		})
	}
	// The stage funcs never fail; the group exists for the barrier.
	_ = g.Wait()

	entities.Apply(&rec)

	flags, valConf := p.validator.Validate(&rec)

	if finishStages != nil {
		debug.LogDetail("validator", fmt.Sprintf("%d flags raised", len(flags)))
		finishStages(true, fmt.Sprintf("language=%s template=%s", meta.DetectedLanguage, meta.MatchedTemplate))
	}

	metrics := judgment.ConfidenceMetrics{
		Extraction:        judgment.Float64(extConf),
		EntityRecognition: entityConf,
		TemplateMatching:  templateConf,
		DataValidation:    judgment.Float64(valConf),
	}
	if p.options.EnableOCR && input.OCRConfidence != nil {
		metrics.OCR = input.OCRConfidence
	}
	metrics.Overall = confidence.Aggregate(metrics)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"flags":   len(flags),
			"overall": metrics.Overall,
		})
	}

	return &judgment.Result{
		Record:     rec,
		Confidence: metrics,
		Flags:      flags,
		Metadata:   meta,
	}
}

// acquireText resolves the input into a text buffer and document metadata.
// ok is false when no text could be obtained at all.
func (p *Processor) acquireText(input Input) (string, judgment.Metadata, bool) {
	meta := judgment.Metadata{PageCount: 1, SourceFormat: "text"}

	if input.FilePath == "" {
		return input.Text, meta, input.Text != ""
	}

	content, err := p.acquirer.Acquire(input.FilePath)
	if content != nil {
		if content.PageCount > 0 {
			meta.PageCount = content.PageCount
		}
		if content.Format != "" {
			meta.SourceFormat = content.Format
		}
		meta.ImageMeta = content.ImageMeta
	}

	if err != nil {
		// Scanned images carry no text layer; externally supplied OCR
		// text keeps the run alive when OCR is enabled.
		if errors.Is(err, acquire.ErrNeedsExternalOCR) && p.options.EnableOCR && input.Text != "" {
			return input.Text, meta, true
		}
		return "", meta, false
	}

	if content.Text == "" {
		if input.Text != "" {
			return input.Text, meta, true
		}
		return "", meta, false
	}
	return content.Text, meta, true
}

// acquisitionFailureResult is the terminal outcome for a document whose
// text could not be obtained: empty record, one high-severity flag, and
// overall confidence 0.
func acquisitionFailureResult(path string, meta judgment.Metadata) *judgment.Result {
	meta.DetectedLanguage = language.LanguageEnglish
	meta.MatchedTemplate = "unknown"
	return &judgment.Result{
		Record: judgment.ExtractedRecord{DocumentType: judgment.DocTypeUnknown},
		Flags: []judgment.ValidationFlag{{
			Type:     judgment.FlagAcquisitionFailure,
			Severity: judgment.SeverityHigh,
			Message:  fmt.Sprintf("no text could be acquired from document %q", path),
		}},
		Metadata: meta,
	}
}
