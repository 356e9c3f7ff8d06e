package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/service"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// AreaHandler exposes area endpoints.
type AreaHandler struct {
	service *service.AreaService
}

// NewAreaHandler constructs handler.
func NewAreaHandler(areaService *service.AreaService) *AreaHandler {
	return &AreaHandler{service: areaService}
}

// List GET /area.
func (h *AreaHandler) List(c *fiber.Ctx) error {
	areas, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]*dto.AreaResponse, 0, len(areas))
	for i := range areas {
		items = append(items, areaResponse(&areas[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /area/:id.
func (h *AreaHandler) Get(c *fiber.Ctx) error {
	area, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areaResponse(area)})
}

// Create POST /area.
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.Create(c.UserContext(), service.AreaInput{Name: req.Name, Building: req.Building})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": areaResponse(area)})
}

// Update PATCH /area/:id.
func (h *AreaHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.Update(c.UserContext(), c.Params("id"), service.AreaPatch{Name: req.Name, Building: req.Building})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areaResponse(area)})
}

// Delete DELETE /area/:id.
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deletionResponse(deleted)})
}
