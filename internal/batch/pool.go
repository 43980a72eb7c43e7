// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package batch runs the extraction pipeline over many documents with
// bounded concurrency. Results stream back in completion order.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"judgment-extract/internal/core"
	"judgment-extract/internal/judgment"
	"judgment-extract/internal/observability"
)

// Job identifies one document to process.
type Job struct {
	FilePath string
}

// Result pairs a processed document with its outcome and timing.
type Result struct {
	FilePath string
	Result   *judgment.Result
	Duration time.Duration
}

// Pool fans jobs out to a fixed set of workers sharing one processor.
// The processor is stateless, so workers need no further coordination.
type Pool struct {
	workers   int
	processor *core.Processor
	observer  *observability.StandardObserver

	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

// NewPool creates a pool with the given concurrency. Zero or negative
// workers falls back to the number of CPUs.
func NewPool(workers int, processor *core.Processor, observer *observability.StandardObserver) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers:   workers,
		processor: processor,
		observer:  observer,
		jobs:      make(chan Job, workers),
		results:   make(chan Result, workers),
	}
}

// Run processes every file and returns the results ordered by file path.
// Workers stop draining jobs once ctx is cancelled; results already
// produced are still returned.
func (p *Pool) Run(ctx context.Context, files []string) []Result {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	go func() {
		defer close(p.jobs)
		for _, f := range files {
			select {
			case p.jobs <- Job{FilePath: f}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	results := make([]Result, 0, len(files))
	for r := range p.results {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].FilePath < results[j].FilePath })
	return results
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for job := range p.jobs {
		var finishTiming func(bool, map[string]interface{})
		if p.observer != nil {
			finishTiming = p.observer.StartTiming("batch", "process_file", job.FilePath)
		}

		start := time.Now()
		result := p.processor.Process(ctx, core.Input{FilePath: job.FilePath})

		if finishTiming != nil {
			finishTiming(true, map[string]interface{}{
				"overall_confidence": result.Confidence.Overall,
				"flag_count":         len(result.Flags),
			})
		}

		p.results <- Result{
			FilePath: job.FilePath,
			Result:   result,
			Duration: time.Since(start),
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// supportedExtensions mirrors what the file acquirer can route.
var supportedExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".tif":  true,
}

// CollectFiles walks dir and returns the supported document paths in
// lexical order.
func CollectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
