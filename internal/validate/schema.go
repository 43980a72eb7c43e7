// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validate

// recordSchema is the shape contract for a merged ExtractedRecord. It
// encodes the record invariant that every numeric financial fact, when
// present, is non-negative.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "case_number": {"type": "string", "minLength": 1},
    "court_type": {"type": "string"},
    "document_type": {
      "type": "string",
      "enum": ["judgment", "consent_order", "application", "affidavit", "unknown"]
    },
    "husband_name": {"type": "string"},
    "wife_name": {"type": "string"},
    "husband_id": {"type": "string"},
    "wife_id": {"type": "string"},
    "order_date": {"type": "string"},
    "husband_income": {"type": "number", "minimum": 0},
    "nafkah_iddah_amount": {"type": "number", "minimum": 0},
    "mutaah_amount": {"type": "number", "minimum": 0},
    "mutaah_lump_sum": {"type": "number", "minimum": 0},
    "marriage_duration_months": {"type": "integer", "minimum": 0},
    "is_consent_order": {"type": "boolean"}
  },
  "required": ["document_type", "is_consent_order"],
  "additionalProperties": false
}`
