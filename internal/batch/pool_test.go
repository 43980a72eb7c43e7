// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"judgment-extract/internal/core"
)

func writeDocs(t *testing.T, dir string, n int) []string {
	t.Helper()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("case_%02d.txt", i))
		text := fmt.Sprintf(
			"Case No: OS/%d/2023\nIn the Syariah Court of Singapore.\n"+
				"The Defendant shall pay nafkah iddah of $%d per month.\n",
			1000+i, 200+i*10)
		if err := os.WriteFile(path, []byte(text), 0600); err != nil {
			t.Fatalf("write doc: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func newTestProcessor(t *testing.T) *core.Processor {
	t.Helper()
	p, err := core.NewProcessor(core.ProcessorConfig{Options: core.DefaultOptions()})
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	return p
}

func TestPoolProcessesAllFiles(t *testing.T) {
	dir := t.TempDir()
	files := writeDocs(t, dir, 5)

	pool := NewPool(2, newTestProcessor(t), nil)
	results := pool.Run(context.Background(), files)

	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	for i, r := range results {
		if r.FilePath != files[i] {
			t.Errorf("result %d: expected path %q, got %q", i, files[i], r.FilePath)
		}
		if r.Result == nil {
			t.Fatalf("result %d: nil result", i)
		}
		if r.Result.Record.NafkahIddahAmount == nil {
			t.Errorf("result %d: expected nafkah iddah amount", i)
		}
	}
}

func TestPoolDefaultWorkerCount(t *testing.T) {
	pool := NewPool(0, newTestProcessor(t), nil)
	if pool.workers <= 0 {
		t.Errorf("expected positive worker count, got %d", pool.workers)
	}
}

func TestPoolEmptyInput(t *testing.T) {
	pool := NewPool(2, newTestProcessor(t), nil)
	results := pool.Run(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir, 2)
	if err := os.WriteFile(filepath.Join(dir, "notes.docx"), []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "scan.pdf"), []byte("%PDF"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	files, err := CollectFiles(dir)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 supported files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		ext := filepath.Ext(f)
		if ext == ".docx" {
			t.Errorf("unsupported file collected: %s", f)
		}
	}
}
