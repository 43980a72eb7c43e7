// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"judgment-extract/internal/batch"
	"judgment-extract/internal/config"
	"judgment-extract/internal/core"
	"judgment-extract/internal/formatters"
	"judgment-extract/internal/formula"
	"judgment-extract/internal/observability"
	"judgment-extract/internal/version"

	// Register output formatters
	_ "judgment-extract/internal/formatters/csv"
	_ "judgment-extract/internal/formatters/json"
	_ "judgment-extract/internal/formatters/text"
	_ "judgment-extract/internal/formatters/yaml"
)

// configFlags holds command line flag values
type configFlags struct {
	outputFormat     string
	verbose          bool
	debug            bool
	noColor          bool
	strictValidation bool
	noOCR            bool
	noTemplates      bool
	noEntities       bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format                  string
	verbose                 bool
	debug                   bool
	noColor                 bool
	strictValidation        bool
	enableOCR               bool
	enableTemplateMatching  bool
	enableEntityRecognition bool
	lumpSumDivisorDays      float64
	monthlyDivisorDays      float64
	deviationTolerance      float64
}

func main() {
	inputFile := flag.String("file", "", "Path to the input document (.txt, .pdf, or a scanned image)")
	inputText := flag.String("text", "", "Process the given judgment text directly instead of a file")
	ocrConfidence := flag.Float64("ocr-confidence", -1, "Confidence reported by the external OCR service for -text input (0..1)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, yaml, csv (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	verbose := flag.Bool("verbose", false, "Display per-stage confidence signals and image metadata")
	debug := flag.Bool("debug", false, "Enable debug logging of the processing pipeline")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	strict := flag.Bool("strict", false, "Enable strict validation (flags missing financial data and case numbers)")
	noOCR := flag.Bool("no-ocr", false, "Refuse scanned-image input instead of accepting external OCR text")
	noTemplates := flag.Bool("no-template", false, "Disable template matching")
	noEntities := flag.Bool("no-entity", false, "Disable party entity recognition")
	workers := flag.Int("workers", 0, "Worker count for directory input (default: number of CPUs)")
	salary := flag.Float64("salary", -1, "Formula mode: compute statutory awards for this monthly salary and exit")
	award := flag.String("award", "", "Formula mode: restrict to one award, nafkah_iddah or mutaah")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	if *showHelp {
		printHelp()
		return
	}

	cfg := loadConfiguration(*configFile)

	if *listProfiles {
		printProfiles(cfg)
		return
	}

	var activeProfile *config.Profile
	if *profileName != "" {
		activeProfile = cfg.GetProfile(*profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found in configuration\n", *profileName)
			fmt.Fprintf(os.Stderr, "Available profiles: %s\n", strings.Join(cfg.ListProfiles(), ", "))
			os.Exit(1)
		}
	}

	flags := &configFlags{
		outputFormat:     *outputFormat,
		verbose:          *verbose,
		debug:            *debug,
		noColor:          *noColor,
		strictValidation: *strict,
		noOCR:            *noOCR,
		noTemplates:      *noTemplates,
		noEntities:       *noEntities,
	}
	finalConfig := resolveConfiguration(cfg, activeProfile, flags)

	// Colors are only meaningful on an interactive terminal
	if !isTerminal(os.Stdout) || *outputFile != "" {
		finalConfig.noColor = true
	}

	// Formula mode stands alone: compute, print the reasoning trail, exit.
	if *salary >= 0 {
		if err := runFormulaMode(*salary, *award); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *inputFile == "" && *inputText == "" {
		fmt.Fprintln(os.Stderr, "Error: one of -file, -text, or -salary is required")
		flag.Usage()
		os.Exit(1)
	}
	if *inputFile != "" && *inputText != "" {
		fmt.Fprintln(os.Stderr, "Error: -file and -text are mutually exclusive")
		os.Exit(1)
	}

	observer := buildObserver(finalConfig)

	processor, err := core.NewProcessor(core.ProcessorConfig{
		Options: core.Options{
			EnableOCR:               finalConfig.enableOCR,
			EnableTemplateMatching:  finalConfig.enableTemplateMatching,
			EnableEntityRecognition: finalConfig.enableEntityRecognition,
			StrictValidation:        finalConfig.strictValidation,
		},
		LumpSumDivisorDays: finalConfig.lumpSumDivisorDays,
		MonthlyDivisorDays: finalConfig.monthlyDivisorDays,
		DeviationTolerance: finalConfig.deviationTolerance,
		Observer:           observer,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Directory input fans out across a worker pool, one result per document.
	if *inputFile != "" {
		if info, statErr := os.Stat(*inputFile); statErr == nil && info.IsDir() {
			if err := runBatchMode(processor, observer, *inputFile, *workers, finalConfig); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	input := core.Input{Text: *inputText, FilePath: *inputFile}
	if *ocrConfidence >= 0 {
		if *ocrConfidence > 1 {
			fmt.Fprintln(os.Stderr, "Error: -ocr-confidence must be in [0, 1]")
			os.Exit(1)
		}
		c := *ocrConfidence
		input.OCRConfidence = &c
	}

	result := processor.Process(context.Background(), input)

	output, err := formatters.Export(finalConfig.format, result, formatters.FormatterOptions{
		Verbose: finalConfig.verbose,
		NoColor: finalConfig.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(output, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfiguration(configFile string) *config.Config {
	// If config file is not specified, try to find one in standard locations
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	// Load configuration (will use defaults if file not found)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// resolveConfiguration resolves final configuration values from config file,
// profile, and command line flags. Precedence: flags > profile > defaults.
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{
		format:                  cfg.Defaults.Format,
		verbose:                 cfg.Defaults.Verbose,
		debug:                   cfg.Defaults.Debug,
		noColor:                 cfg.Defaults.NoColor,
		strictValidation:        cfg.Defaults.StrictValidation,
		enableOCR:               cfg.Defaults.EnableOCR,
		enableTemplateMatching:  cfg.Defaults.EnableTemplateMatching,
		enableEntityRecognition: cfg.Defaults.EnableEntityRecognition,
		lumpSumDivisorDays:      cfg.Extraction.LumpSumDivisorDays,
		monthlyDivisorDays:      cfg.Extraction.MonthlyDivisorDays,
		deviationTolerance:      cfg.Validation.DeviationTolerance,
	}

	if activeProfile != nil {
		if activeProfile.Format != "" {
			final.format = activeProfile.Format
		}
		final.verbose = activeProfile.Verbose
		final.debug = activeProfile.Debug
		final.noColor = activeProfile.NoColor
		final.strictValidation = activeProfile.StrictValidation
		final.enableOCR = activeProfile.EnableOCR
		final.enableTemplateMatching = activeProfile.EnableTemplateMatching
		final.enableEntityRecognition = activeProfile.EnableEntityRecognition
		if activeProfile.DeviationTolerance > 0 {
			final.deviationTolerance = activeProfile.DeviationTolerance
		}
	}

	// Command line flags take highest precedence
	if flags.outputFormat != "" {
		final.format = flags.outputFormat
	}
	if flags.verbose {
		final.verbose = true
	}
	if flags.debug {
		final.debug = true
	}
	if flags.noColor {
		final.noColor = true
	}
	if flags.strictValidation {
		final.strictValidation = true
	}
	if flags.noOCR {
		final.enableOCR = false
	}
	if flags.noTemplates {
		final.enableTemplateMatching = false
	}
	if flags.noEntities {
		final.enableEntityRecognition = false
	}

	if final.format == "" {
		final.format = "text"
	}

	return final
}

func buildObserver(finalConfig *finalConfiguration) *observability.StandardObserver {
	level := observability.ObservabilityOff
	if finalConfig.debug {
		level = observability.ObservabilityDebug
	} else if finalConfig.verbose {
		level = observability.ObservabilityMetrics
	}
	if level == observability.ObservabilityOff {
		return nil
	}
	observer := observability.NewStandardObserver(level, os.Stderr)
	if level == observability.ObservabilityDebug {
		observer.DebugObserver = observability.NewDebugObserver(os.Stderr)
	}
	return observer
}

// runBatchMode processes every supported document under dir and prints one
// formatted result per file.
func runBatchMode(processor *core.Processor, observer *observability.StandardObserver, dir string, workers int, finalConfig *finalConfiguration) error {
	files, err := batch.CollectFiles(dir)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported documents found under %s", dir)
	}

	pool := batch.NewPool(workers, processor, observer)
	results := pool.Run(context.Background(), files)

	for _, r := range results {
		output, err := formatters.Export(finalConfig.format, r.Result, formatters.FormatterOptions{
			Verbose: finalConfig.verbose,
			NoColor: finalConfig.noColor,
		})
		if err != nil {
			return err
		}
		fmt.Printf("=== %s (%s) ===\n%s\n", r.FilePath, r.Duration.Round(time.Millisecond), output)
	}
	return nil
}

// runFormulaMode evaluates the statutory formulas for a salary and prints
// the amounts, ranges, and the reasoning trail.
func runFormulaMode(salary float64, awardName string) error {
	var awards []formula.Award
	if awardName != "" {
		switch formula.Award(awardName) {
		case formula.AwardNafkahIddah, formula.AwardMutaah:
			awards = []formula.Award{formula.Award(awardName)}
		default:
			return fmt.Errorf("unknown award %q (expected nafkah_iddah or mutaah)", awardName)
		}
	}

	engine := formula.NewEngine()
	results, reasoning, err := engine.Calculate(salary, awards...)
	if err != nil {
		return err
	}

	fmt.Printf("Salary: $%.2f/month\n\n", salary)
	for _, r := range results {
		unit := "/month"
		if r.Award == formula.AwardMutaah {
			unit = "/day"
		}
		if r.OutOfScope {
			fmt.Printf("%s: out of formula scope (salary above $%.0f cap)\n", r.Award, formula.SalaryCap)
			continue
		}
		fmt.Printf("%s: $%.2f%s (range $%.2f - $%.2f)\n", r.Award, r.Amount, unit, r.LowerRange, r.UpperRange)
	}

	fmt.Println("\nReasoning:")
	for _, step := range reasoning {
		fmt.Printf("  - %s\n", step)
	}
	return nil
}

func printProfiles(cfg *config.Config) {
	names := cfg.ListProfiles()
	if len(names) == 0 {
		fmt.Println("No profiles defined")
		return
	}
	fmt.Println("Available profiles:")
	for _, name := range names {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Printf("  %-12s %s\n", name, profile.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

func writeOutput(output, outputFile string) error {
	if outputFile == "" {
		fmt.Println(output)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(output), 0600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Printf("Output written to %s\n", outputFile)
	return nil
}

func printHelp() {
	fmt.Println(version.Info())
	fmt.Println()
	fmt.Println("Extracts structured financial facts from Syariah Court divorce judgments")
	fmt.Println("and cross-checks awards against the statutory formulas.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  judgment-extract -file judgment.pdf")
	fmt.Println("  judgment-extract -text \"...\" -ocr-confidence 0.9 -format json")
	fmt.Println("  judgment-extract -salary 2000 -award mutaah")
	fmt.Println()
	fmt.Println("Output formats:", strings.Join(formatters.List(), ", "))
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
