// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package acquire obtains decoded text from document files. It is the
// boundary to the external text-acquisition collaborators: plain text and
// PDF extraction happen in-process, while OCR for scanned images is an
// external concern whose output is handed in by the caller. A failure here
// is terminal for the document being processed.
package acquire

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"judgment-extract/internal/observability"
)

// Content is the decoded text plus document facts gathered on the way.
type Content struct {
	Text      string
	PageCount int
	Format    string

	// ImageMeta holds EXIF facts for scanned images (capture time, device).
	ImageMeta map[string]any
}

// ErrUnsupportedFormat is returned for file types no acquirer handles.
var ErrUnsupportedFormat = errors.New("acquire: unsupported document format")

// ErrNeedsExternalOCR is returned for image formats: the core performs no
// OCR, so text for scanned documents must be supplied by the caller.
var ErrNeedsExternalOCR = errors.New("acquire: scanned image requires externally supplied OCR text")

// Acquirer obtains text from a document file.
type Acquirer interface {
	Acquire(path string) (*Content, error)
}

// FileAcquirer routes a file to the extractor for its format.
type FileAcquirer struct {
	observer *observability.StandardObserver
}

// NewFileAcquirer returns an acquirer. The observer may be nil.
func NewFileAcquirer(observer *observability.StandardObserver) *FileAcquirer {
	return &FileAcquirer{observer: observer}
}

// Acquire extracts text from the file at path based on its extension.
func (a *FileAcquirer) Acquire(path string) (*Content, error) {
	var finishTiming func(bool, map[string]interface{})
	if a.observer != nil {
		finishTiming = a.observer.StartTiming("acquirer", "acquire_text", path)
	}

	content, err := a.acquire(path)

	if finishTiming != nil {
		meta := map[string]interface{}{}
		if content != nil {
			meta["page_count"] = content.PageCount
			meta["content_length"] = len(content.Text)
		}
		finishTiming(err == nil, meta)
	}

	return content, err
}

func (a *FileAcquirer) acquire(path string) (*Content, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return acquirePlaintext(path)
	case ".pdf":
		return acquirePDF(path)
	case ".jpg", ".jpeg", ".tif", ".tiff", ".png":
		// Attach what the image itself can tell us, then report that the
		// text must come from the external OCR collaborator.
		meta, _ := ImageMetadata(path)
		return &Content{Format: "image", PageCount: 1, ImageMeta: meta}, ErrNeedsExternalOCR
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func acquirePlaintext(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	return &Content{
		Text:      string(data),
		PageCount: 1,
		Format:    "text",
	}, nil
}
