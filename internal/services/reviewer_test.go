package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkedin-reviewer/internal/models"
)

type stubCompletion struct {
	configured bool
	content    string
	err        error
	prompts    []string
}

func (s *stubCompletion) Configured() bool { return s.configured }

func (s *stubCompletion) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.content, s.err
}

type stubParser struct {
	text string
	err  error
}

func (s stubParser) ExtractText([]byte) (string, error) { return s.text, s.err }
func (s stubParser) ExtractFile(string) (string, error) { return s.text, s.err }

var profileText = words(120, "Jane Doe", "Experience", "About", "42 connections")

const validReply = `{
  "score": 81,
  "connections": null,
  "headline": {"suggestion": "Backend Engineer | Go | Distributed Systems", "explanation": "Specific."},
  "about": {"suggestion": "I build reliable services.", "explanation": "Clear."},
  "experience": [{"role": "Engineer at Acme", "tips": "Quantify latency wins."}],
  "skills": {"missing": ["Terraform"], "notes": "Add cloud tooling."},
  "keywords": ["go", "kubernetes"],
  "summary": "Strong base, add metrics.",
  "full_name": "Jane Doe"
}`

func newTestReviewer(completion CompletionService, parser PDFParserService, strict bool) ReviewerService {
	return NewReviewerService(completion, parser, zap.NewNop(), ReviewerOptions{StrictSchema: strict})
}

func upload() *models.Upload {
	return &models.Upload{Filename: "profile.pdf", Data: []byte("%PDF-stub")}
}

func TestReviewBackfillsMissingCounts(t *testing.T) {
	completion := &stubCompletion{configured: true, content: validReply}
	reviewer := newTestReviewer(completion, stubParser{text: profileText}, false)

	review, err := reviewer.Review(context.Background(), upload(), " Staff Engineer ")

	require.NoError(t, err)
	require.NotNil(t, review.Connections)
	assert.Equal(t, 42, *review.Connections)
	assert.Nil(t, review.Followers)
	assert.Equal(t, 81, review.Score)
	require.NotNil(t, review.FullName)
	assert.Equal(t, "Jane Doe", *review.FullName)

	require.Len(t, completion.prompts, 1)
	assert.Contains(t, completion.prompts[0], profileText)
	assert.Contains(t, completion.prompts[0], "Target job role / title: Staff Engineer\n")
	assert.Contains(t, completion.prompts[0], "connections: 42, followers: unknown")
}

func TestReviewModelEstimatePrevails(t *testing.T) {
	reply := `{"score": 70, "connections": 900, "followers": "1,200"}`
	reviewer := newTestReviewer(&stubCompletion{configured: true, content: reply}, stubParser{text: profileText}, false)

	review, err := reviewer.Review(context.Background(), upload(), "")

	require.NoError(t, err)
	assert.Equal(t, 900, *review.Connections)
	assert.Equal(t, 1200, *review.Followers)
}

func TestReviewFailureModes(t *testing.T) {
	cases := []struct {
		name       string
		completion *stubCompletion
		parser     stubParser
		upload     *models.Upload
		strict     bool
		kind       ErrorKind
		status     int
		message    string
	}{
		{
			name:       "missing credential",
			completion: &stubCompletion{configured: false},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindConfiguration,
			status:     http.StatusInternalServerError,
		},
		{
			name:       "no file",
			completion: &stubCompletion{configured: true},
			upload:     nil,
			kind:       KindValidation,
			status:     http.StatusBadRequest,
		},
		{
			name:       "extraction failure",
			completion: &stubCompletion{configured: true},
			parser:     stubParser{err: newExtractionError("Failed to parse PDF.", errors.New("bad xref"))},
			upload:     upload(),
			kind:       KindExtraction,
			status:     http.StatusInternalServerError,
		},
		{
			name:       "empty text",
			completion: &stubCompletion{configured: true},
			parser:     stubParser{text: ""},
			upload:     upload(),
			kind:       KindValidation,
			status:     http.StatusBadRequest,
		},
		{
			name:       "not a profile",
			completion: &stubCompletion{configured: true},
			parser:     stubParser{text: words(200, "invoice", "total")},
			upload:     upload(),
			kind:       KindValidation,
			status:     http.StatusBadRequest,
		},
		{
			name:       "upstream failure",
			completion: &stubCompletion{configured: true, err: newUpstreamStatusError(503, "down")},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindUpstream,
			status:     http.StatusInternalServerError,
		},
		{
			name:       "prose instead of json",
			completion: &stubCompletion{configured: true, content: "Here is your review: great profile!"},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
			message:    "Model output was not valid JSON.",
		},
		{
			name:       "fenced json",
			completion: &stubCompletion{configured: true, content: "```json\n" + validReply + "\n```"},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
		},
		{
			name:       "json array",
			completion: &stubCompletion{configured: true, content: `[1, 2, 3]`},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
			message:    "Model output was not a JSON object.",
		},
		{
			name:       "wrong field type",
			completion: &stubCompletion{configured: true, content: `{"score": 50, "headline": "just a string"}`},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
			message:    "Model output could not be read as a review.",
		},
		{
			name:       "score missing",
			completion: &stubCompletion{configured: true, content: `{"connections": 5}`},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
			message:    "Model output could not be read as a review.",
		},
		{
			name:       "score null",
			completion: &stubCompletion{configured: true, content: `{"score": null}`},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
			message:    "Model output could not be read as a review.",
		},
		{
			name:       "strict schema",
			completion: &stubCompletion{configured: true, content: `{"score": 50}`},
			parser:     stubParser{text: profileText},
			upload:     upload(),
			strict:     true,
			kind:       KindModelOutput,
			status:     http.StatusInternalServerError,
			message:    "Model output does not match the review schema.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviewer := newTestReviewer(tc.completion, tc.parser, tc.strict)

			review, err := reviewer.Review(context.Background(), tc.upload, "")

			require.Error(t, err)
			assert.Nil(t, review)
			re, ok := AsReviewError(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, re.Kind)
			assert.Equal(t, tc.status, re.HTTPStatus())
			if tc.message != "" {
				assert.Equal(t, tc.message, re.Message)
			}
		})
	}
}

func TestReviewStopsBeforeCompletionOnValidationErrors(t *testing.T) {
	completion := &stubCompletion{configured: true, content: validReply}
	reviewer := newTestReviewer(completion, stubParser{text: words(30, "skills")}, false)

	_, err := reviewer.Review(context.Background(), upload(), "")

	assert.True(t, IsKind(err, KindValidation))
	assert.Empty(t, completion.prompts)
}

func TestReviewModelOutputErrorCarriesRawText(t *testing.T) {
	completion := &stubCompletion{configured: true, content: "not json at all"}
	reviewer := newTestReviewer(completion, stubParser{text: profileText}, false)

	_, err := reviewer.Review(context.Background(), upload(), "")

	re, ok := AsReviewError(err)
	require.True(t, ok)
	assert.Equal(t, "not json at all", re.Raw)
}

func TestReviewStrictSchemaAcceptsCompleteReply(t *testing.T) {
	reviewer := newTestReviewer(&stubCompletion{configured: true, content: validReply}, stubParser{text: profileText}, true)

	review, err := reviewer.Review(context.Background(), upload(), "")

	require.NoError(t, err)
	assert.Equal(t, models.StringList{"Terraform"}, review.Skills.Missing)
}

func TestReviewWithRealExtractor(t *testing.T) {
	lines := []string{
		"Jane Doe - LinkedIn Profile",
		"500+ connections",
		"Summary About me as a backend engineer with many years of experience",
	}
	for i := 0; i < 12; i++ {
		lines = append(lines, "Built and operated services handling millions of requests per day")
	}
	data := makePDF(t, lines)
	completion := &stubCompletion{configured: true, content: `{"score": 64}`}
	reviewer := NewReviewerService(completion, NewPDFParserService(), zap.NewNop(), ReviewerOptions{})

	review, err := reviewer.Review(context.Background(), &models.Upload{Filename: "p.pdf", Data: data}, "")

	require.NoError(t, err)
	assert.Equal(t, 64, review.Score)
	require.NotNil(t, review.Connections)
	assert.Equal(t, 500, *review.Connections)
}
