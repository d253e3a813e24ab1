package response

import (
	"errors"

	"rentdesk-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusOK).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusCreated).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// BadRequest sends 400 with the standard error shape.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusBadRequest, nil)
}

// Classify maps an engine or storage error to status, message and details.
// Storage faults keep only a short diagnostic.
func Classify(err error) (int, string, map[string]interface{}) {
	details := map[string]interface{}{}

	var partial *domain.PartialImportError
	if errors.As(err, &partial) {
		details["inserted"] = partial.Inserted
		details["failed_row"] = partial.Row
		details["site_code"] = partial.SiteCode
		if errors.Is(partial.Err, domain.ErrDuplicateSiteCode) {
			return fiber.StatusConflict, partial.Error(), details
		}
		return fiber.StatusInternalServerError, "Import stopped before completion", details
	}

	var missing *domain.MissingColumns
	if errors.As(err, &missing) {
		details["columns"] = missing.Columns
		return fiber.StatusBadRequest, missing.Error(), details
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		if verr.Field != "" {
			details["field"] = verr.Field
		}
		return fiber.StatusBadRequest, verr.Error(), details
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, err.Error(), details
	case errors.Is(err, domain.ErrRecordNotFound):
		return fiber.StatusNotFound, domain.ErrRecordNotFound.Error(), details
	case errors.Is(err, domain.ErrDuplicateSiteCode):
		return fiber.StatusConflict, err.Error(), details
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message, details
	}
	details["diagnostic"] = diagnostic(err)
	return fiber.StatusInternalServerError, "Database error", details
}

// FromError writes err in the standard error shape.
func FromError(c *fiber.Ctx, err error) error {
	code, message, details := Classify(err)
	return Error(c, message, code, details)
}

func diagnostic(err error) string {
	const max = 120
	s := err.Error()
	if len(s) > max {
		s = s[:max]
	}
	return s
}
