// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package acquire

import (
	"fmt"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// EXIF fields worth surfacing for a scanned judgment: when and on what
// device the scan was made.
var imageMetaFields = []exif.FieldName{
	exif.DateTime,
	exif.DateTimeOriginal,
	exif.Make,
	exif.Model,
	exif.Software,
	exif.ImageWidth,
	exif.ImageLength,
}

// ImageMetadata reads scan metadata from a JPEG/TIFF file. Images without
// EXIF data return an empty map; that is not an error worth failing over.
func ImageMetadata(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return map[string]any{}, nil
	}

	meta := make(map[string]any)
	for _, field := range imageMetaFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		meta[string(field)] = tag.String()
	}
	return meta, nil
}
