// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package acquire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// maxPDFPages bounds extraction time on very large documents. Court
// judgments are rarely more than a few dozen pages.
const maxPDFPages = 50

// acquirePDF extracts the text layer of a PDF. Scanned PDFs without a text
// layer yield empty text, which the caller treats as an acquisition
// failure.
func acquirePDF(path string) (*Content, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A page that fails to decode loses its text but does not
			// abort the document.
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	content := &Content{
		Text:      cleanExtractedText(buf.String()),
		PageCount: pageCount(path, r.NumPage()),
		Format:    "pdf",
	}
	return content, nil
}

// pageCount prefers pdfcpu's count, which also works on documents whose
// page tree confuses the text extractor.
func pageCount(path string, fallback int) int {
	if n, err := api.PageCountFile(path); err == nil && n > 0 {
		return n
	}
	return fallback
}

// cleanExtractedText collapses the whitespace artifacts PDF text layers
// tend to carry while preserving line structure.
func cleanExtractedText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
