package reports

import (
	"bytes"
	"fmt"

	reportsvc "rentdesk-backend/internal/application/reports"
	"rentdesk-backend/internal/lease"
	"rentdesk-backend/internal/pkg/response"
	"rentdesk-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *reportsvc.Service
}

type reportQuery struct {
	Type        string `query:"type" validate:"required"`
	FromDate    string `query:"from_date" validate:"required"`
	ToDate      string `query:"to_date" validate:"required"`
	LeasePeriod string `query:"lease_period" validate:"omitempty,numeric"`
}

func (h *Handlers) run(c *fiber.Ctx) (reportsvc.Report, error) {
	var q reportQuery
	if err := c.QueryParser(&q); err != nil {
		return reportsvc.Report{}, fiber.NewError(fiber.StatusBadRequest, "Invalid query string")
	}
	if err := validation.Struct(q); err != nil {
		return reportsvc.Report{}, err
	}
	return h.Service.Run(c.UserContext(), q.Type, q.FromDate, q.ToDate, q.LeasePeriod)
}

// Run GET /api/reports?type=&from_date=&to_date=&lease_period=
func (h *Handlers) Run(c *fiber.Ctx) error {
	rep, err := h.run(c)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Report generated successfully", rep.Rows, fiber.Map{
		"type":    rep.Type,
		"columns": rep.Columns,
		"count":   rep.Count,
	})
}

// Export GET /api/reports/export takes the same query and returns an .xlsx download.
func (h *Handlers) Export(c *fiber.Ctx) error {
	rep, err := h.run(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var buf bytes.Buffer
	if err := reportsvc.Export(&buf, rep); err != nil {
		return response.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", reportsvc.Filename(rep)))
	return c.Send(buf.Bytes())
}

// Types GET /api/reports/types
func (h *Handlers) Types(c *fiber.Ctx) error {
	types := lease.ReportTypes()
	out := make([]fiber.Map, 0, len(types))
	for _, t := range types {
		out = append(out, fiber.Map{"type": t, "columns": t.Columns()})
	}
	return response.Success(c, "Report types", out, nil)
}
