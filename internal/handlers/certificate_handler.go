package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"linkedin-reviewer/internal/config"
	"linkedin-reviewer/internal/models"
	"linkedin-reviewer/internal/services"
	"linkedin-reviewer/internal/validator"
)

type CertificateHandler struct {
	certificates services.CertificateService
	validator    *validator.Validator
	cfg          config.CertificateConfig
	logger       *zap.Logger
}

func NewCertificateHandler(
	certificates services.CertificateService,
	v *validator.Validator,
	cfg config.CertificateConfig,
	logger *zap.Logger,
) *CertificateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateHandler{
		certificates: certificates,
		validator:    v,
		cfg:          cfg,
		logger:       logger,
	}
}

// HandleCertificate handles GET /certificate?score=<0-100>&name=<text>.
func (h *CertificateHandler) HandleCertificate(c *fiber.Ctx) error {
	if strings.TrimSpace(c.Query("score")) == "" {
		return badCertificateRequest(c, "score query parameter is required")
	}

	var query models.CertificateQuery
	if err := c.QueryParser(&query); err != nil {
		return badCertificateRequest(c, "score must be an integer between 0 and 100")
	}

	if err := h.validator.Validate(query); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			return badCertificateRequest(c, ve.Error())
		}
		return err
	}

	data, err := h.certificates.RenderToBytes(models.CertificateRequest{
		Name:            query.Name,
		Score:           *query.Score,
		Issuer:          h.cfg.Issuer,
		CreditsText:     h.cfg.CreditsText,
		VerificationURL: h.cfg.VerificationURL,
	})
	if err != nil {
		h.logger.Error("certificate rendering failed", zap.Int("score", *query.Score), zap.Error(err))
		return err
	}

	c.Attachment(services.CertificateFilename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

func badCertificateRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: msg,
		Code:  string(services.KindValidation),
	})
}
