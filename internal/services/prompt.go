package services

import (
	"strconv"
	"strings"

	"linkedin-reviewer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const reviewRubric = `SCORING RUBRIC (be strict):
- 0-39: very poor. Most sections missing or empty, no clear positioning.
- 40-59: weak. Generic headline, thin About section, duties instead of results.
- 60-69: average. Complete but unremarkable, few measurable outcomes.
- 70-79: good. Clear positioning, some quantified impact, relevant keywords.
- 80-89: strong. Compelling headline and About, consistent measurable impact.
- 90-100: elite, <5% of users. Exceptional on every dimension.

Penalize missing sections, vague content, weak headlines, no measurable impact
and poor keyword alignment with the target role. When unsure between two bands,
choose the lower one. Be conservative.`

const reviewSchemaContract = `{
  "score": number,               // 0-100 overall strength, following the rubric
  "connections": number | null,  // parsed / estimated from profile
  "followers": number | null,    // parsed / estimated from profile
  "full_name": string | null,    // the profile owner's name if present
  "headline": {
    "suggestion": string,        // a single, ready-to-use LinkedIn headline
    "explanation": string        // why this headline works
  },
  "about": {
    "suggestion": string,        // a full About section the user can copy-paste
    "explanation": string        // how it improves clarity and positioning
  },
  "experience": [
    { "role": string, "tips": string }  // concrete phrasing suggestions per role
  ],
  "skills": {
    "missing": string[],         // skills worth adding, as an array
    "notes": string
  },
  "keywords": string[],
  "summary": string              // 2-3 line summary of key advice in natural language
}`

// BuildReviewPrompt assembles the review instruction. Output depends only on
// the request, so identical requests produce identical prompts.
func (pb *PromptBuilder) BuildReviewPrompt(req models.ReviewRequest) string {
	var b strings.Builder

	b.WriteString("You are an expert LinkedIn profile reviewer and career coach.\n\n")
	b.WriteString("You will receive the raw text of a LinkedIn profile exported as PDF.\n")
	b.WriteString("Analyse it for clarity, impact, and alignment with the target role, and score it.\n\n")
	b.WriteString(reviewRubric)
	b.WriteString("\n\n")

	b.WriteString("PROFILE TEXT (from PDF):\n")
	b.WriteString("------------------------\n")
	b.WriteString(req.Text)
	b.WriteString("\n------------------------\n")

	if role := strings.TrimSpace(req.TargetRole); role != "" {
		b.WriteString("\nTarget job role / title: ")
		b.WriteString(role)
		b.WriteString("\n")
	}

	b.WriteString("\nParsed network stats from the PDF (may be approximate): ")
	b.WriteString("connections: ")
	b.WriteString(formatCount(req.Stats.Connections))
	b.WriteString(", followers: ")
	b.WriteString(formatCount(req.Stats.Followers))
	b.WriteString("\n\n")

	b.WriteString("Return ONLY a single valid JSON object that matches this schema exactly.\n")
	b.WriteString("Use exactly these field names and nesting. \"skills.missing\" must be an array of strings.\n")
	b.WriteString("Do not wrap the JSON in code fences and do not add any text before or after it.\n")
	b.WriteString("JSON schema:\n")
	b.WriteString(reviewSchemaContract)
	b.WriteString("\nMake sure the JSON is strictly valid and parsable.")

	return b.String()
}

func formatCount(n *int) string {
	if n == nil {
		return "unknown"
	}
	return strconv.Itoa(*n)
}
