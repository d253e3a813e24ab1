package sites

import (
	"encoding/json"

	sitesvc "rentdesk-backend/internal/application/sites"
	"rentdesk-backend/internal/lease"
	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *sitesvc.Service
}

// Get GET /api/sites. With ?site_id= it returns one full record, otherwise the summary list.
func (h *Handlers) Get(c *fiber.Ctx) error {
	if c.Context().QueryArgs().Has("site_id") {
		rec, err := h.Service.Get(c.UserContext(), c.Query("site_id"))
		if err != nil {
			return response.FromError(c, err)
		}
		return response.Success(c, "Site fetched successfully", rec, nil)
	}
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Sites fetched successfully", list, fiber.Map{
		"count": len(list),
		"limit": lease.SummaryLimit,
	})
}

// Create POST /api/sites
func (h *Handlers) Create(c *fiber.Ctx) error {
	in, ok := decodeInput(c)
	if !ok {
		return response.BadRequest(c, "Invalid request body")
	}
	code, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Site created successfully", fiber.Map{"site_id": code}, nil)
}

// Update PUT /api/sites/:site_id
func (h *Handlers) Update(c *fiber.Ctx) error {
	in, ok := decodeInput(c)
	if !ok {
		return response.BadRequest(c, "Invalid request body")
	}
	res, err := h.Service.Update(c.UserContext(), c.Params("site_id"), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Site updated successfully", res, nil)
}

func decodeInput(c *fiber.Ctx) (lease.SiteInput, bool) {
	var in lease.SiteInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return in, false
	}
	return in, true
}
