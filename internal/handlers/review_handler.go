package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"linkedin-reviewer/internal/models"
	"linkedin-reviewer/internal/services"
)

type ReviewHandler struct {
	reviewer    services.ReviewerService
	maxFileSize int64
	logger      *zap.Logger
}

func NewReviewHandler(reviewer services.ReviewerService, maxFileSize int64, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{
		reviewer:    reviewer,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleReview handles POST /review with a multipart "pdf" file and an
// optional "target_role" field.
func (h *ReviewHandler) HandleReview(c *fiber.Ctx) error {
	upload, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: err.Error(),
			Code:  string(services.KindValidation),
		})
	}

	review, err := h.reviewer.Review(c.UserContext(), upload, c.FormValue("target_role"))
	if err != nil {
		return writeReviewError(c, err)
	}

	return c.JSON(models.ReviewResponse{Review: review})
}

// readUpload returns nil when no file was sent; the reviewer decides what
// that means.
func (h *ReviewHandler) readUpload(c *fiber.Ctx) (*models.Upload, error) {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		h.logger.Debug("no pdf in request", zap.Error(err))
		return nil, nil
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return nil, fmt.Errorf("File too large. Max size: %d bytes", h.maxFileSize)
	}

	upload := &models.Upload{Filename: fileHeader.Filename}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Warn("failed to open uploaded file", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return upload, nil
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.logger.Warn("failed to read uploaded file", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return upload, nil
	}
	upload.Data = data

	return upload, nil
}
