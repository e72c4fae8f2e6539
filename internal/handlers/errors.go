package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"linkedin-reviewer/internal/models"
	"linkedin-reviewer/internal/services"
)

// ErrorHandler is the fiber fallback for errors a handler did not answer itself.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	kind := "internal_error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			kind = "request_error"
		}
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  kind,
	})
}

func writeReviewError(c *fiber.Ctx, err error) error {
	re, ok := services.AsReviewError(err)
	if !ok {
		return err
	}

	body := models.ErrorResponse{
		Error:   re.Message,
		Code:    string(re.Kind),
		Details: re.Details,
		Status:  re.Status,
	}
	if re.Raw != "" {
		if json.Valid([]byte(re.Raw)) {
			body.Raw = json.RawMessage(re.Raw)
		} else {
			body.Raw = re.Raw
		}
	}

	return c.Status(re.HTTPStatus()).JSON(body)
}
