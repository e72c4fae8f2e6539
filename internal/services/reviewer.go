package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkedin-reviewer/internal/models"
)

const (
	msgInvalidJSON    = "Model output was not valid JSON."
	msgNotObject      = "Model output was not a JSON object."
	msgSchemaMismatch = "Model output does not match the review schema."
	msgUnusableReview = "Model output could not be read as a review."
)

type ReviewerService interface {
	Review(ctx context.Context, upload *models.Upload, targetRole string) (*models.Review, error)
}

type ReviewerOptions struct {
	// CredentialEnv names the variable that holds the API key, for error messages.
	CredentialEnv string
	// StrictSchema turns schema violations in the model reply into errors.
	StrictSchema bool
}

type reviewerService struct {
	completion    CompletionService
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	opts          ReviewerOptions
}

func NewReviewerService(
	completion CompletionService,
	pdfParser PDFParserService,
	logger *zap.Logger,
	opts ReviewerOptions,
) ReviewerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CredentialEnv == "" {
		opts.CredentialEnv = "GROQ_API_KEY"
	}
	return &reviewerService{
		completion:    completion,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
		opts:          opts,
	}
}

// Review runs the whole pipeline for one upload. Every failure is a
// *ReviewError and ends the request; nothing is retried or cached.
func (r *reviewerService) Review(ctx context.Context, upload *models.Upload, targetRole string) (*models.Review, error) {
	log := r.logger.With(zap.String("request_id", uuid.NewString()))

	if r.completion == nil || !r.completion.Configured() {
		log.Error("completion credential missing", zap.String("env", r.opts.CredentialEnv))
		return nil, newConfigurationError(
			fmt.Sprintf("Missing %s environment variable.", r.opts.CredentialEnv),
			fmt.Sprintf("Set %s in a .env file or your shell before running the app.", r.opts.CredentialEnv),
		)
	}

	if upload == nil {
		return nil, newValidationError("No file uploaded.", "")
	}

	text, err := r.pdfParser.ExtractText(upload.Data)
	if err != nil {
		log.Error("pdf extraction failed", zap.String("filename", upload.Filename), zap.Error(err))
		return nil, err
	}

	if text == "" {
		return nil, newValidationError("No text could be extracted from the PDF.", "")
	}

	if !IsLikelyProfile(text) {
		log.Info("upload rejected as non-profile", zap.Int("words", len(strings.Fields(text))))
		return nil, newValidationError(
			"This does not look like a LinkedIn profile export.",
			"Open your LinkedIn profile, choose More > Save to PDF, and upload that file.",
		)
	}

	stats := ParseStats(text)
	prompt := r.promptBuilder.BuildReviewPrompt(models.ReviewRequest{
		Text:       text,
		TargetRole: strings.TrimSpace(targetRole),
		Stats:      stats,
	})
	log.Debug("review prompt built",
		zap.Int("prompt_chars", len(prompt)),
		zap.Intp("connections", stats.Connections),
		zap.Intp("followers", stats.Followers),
	)

	content, err := r.completion.Complete(ctx, prompt)
	if err != nil {
		log.Error("completion failed", zap.Error(err))
		return nil, err
	}

	review, err := r.decodeReview(log, content)
	if err != nil {
		log.Error("model output rejected", zap.Error(err), zap.String("raw", content))
		return nil, err
	}

	review.Backfill(stats)
	log.Info("review completed", zap.Int("score", review.Score))
	return review, nil
}

func (r *reviewerService) decodeReview(log *zap.Logger, content string) (*models.Review, error) {
	content = strings.TrimSpace(content)

	var generic any
	dec := json.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(&generic); err != nil {
		return nil, newModelOutputError(msgInvalidJSON, err.Error(), content)
	}
	if dec.More() {
		return nil, newModelOutputError(msgInvalidJSON, "unexpected data after the JSON object", content)
	}

	if _, ok := generic.(map[string]any); !ok {
		return nil, newModelOutputError(msgNotObject, "expected a JSON object", content)
	}

	if err := ValidateReviewJSON(generic); err != nil {
		if r.opts.StrictSchema {
			return nil, newModelOutputError(msgSchemaMismatch, err.Error(), content)
		}
		log.Warn("model output deviates from schema", zap.Error(err))
	}

	var review models.Review
	if err := json.Unmarshal([]byte(content), &review); err != nil {
		return nil, newModelOutputError(msgUnusableReview, err.Error(), content)
	}
	return &review, nil
}
