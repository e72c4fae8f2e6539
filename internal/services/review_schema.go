package services

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const reviewJSONSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["score", "headline", "about", "experience", "skills", "keywords", "summary"],
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "connections": {"type": ["number", "null"]},
    "followers": {"type": ["number", "null"]},
    "full_name": {"type": ["string", "null"]},
    "headline": {"$ref": "#/$defs/suggestion"},
    "about": {"$ref": "#/$defs/suggestion"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["role", "tips"],
        "properties": {
          "role": {"type": "string"},
          "tips": {"type": "string"}
        }
      }
    },
    "skills": {
      "type": "object",
      "required": ["missing", "notes"],
      "properties": {
        "missing": {"type": "array", "items": {"type": "string"}},
        "notes": {"type": "string"}
      }
    },
    "keywords": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string"}
  },
  "$defs": {
    "suggestion": {
      "type": "object",
      "required": ["suggestion", "explanation"],
      "properties": {
        "suggestion": {"type": "string"},
        "explanation": {"type": "string"}
      }
    }
  }
}`

var reviewSchema = jsonschema.MustCompileString("review.schema.json", reviewJSONSchema)

// ValidateReviewJSON checks a decoded model reply against the review contract.
func ValidateReviewJSON(v any) error {
	if err := reviewSchema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
