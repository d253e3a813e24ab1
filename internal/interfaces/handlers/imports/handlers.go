package imports

import (
	"fmt"

	importsvc "rentdesk-backend/internal/application/imports"
	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *importsvc.Service
	// MaxBytes caps the uploaded workbook. Zero means no cap.
	MaxBytes int64
}

// Upload POST /api/upload (multipart field "file", .xlsx or .xls)
func (h *Handlers) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file uploaded")
	}
	if !importsvc.SupportedExtension(fh.Filename) {
		return response.BadRequest(c, "Only .xlsx and .xls files are supported")
	}
	if h.MaxBytes > 0 && fh.Size > h.MaxBytes {
		return response.Error(c, fmt.Sprintf("File exceeds %d bytes", h.MaxBytes), fiber.StatusRequestEntityTooLarge, nil)
	}

	f, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Str("file", fh.Filename).Msg("upload: open failed")
		return response.Error(c, "Failed to read upload", fiber.StatusInternalServerError, nil)
	}
	defer f.Close()

	res, err := h.Service.ImportWorkbook(c.UserContext(), f, fh.Filename)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fmt.Sprintf("%d sites imported", res.Inserted), res, fiber.Map{
		"inserted_count": res.Inserted,
		"skipped_count":  len(res.Skipped),
	})
}
