package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/service"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// SupervisorHandler exposes supervisor endpoints.
type SupervisorHandler struct {
	service *service.SupervisorService
}

// NewSupervisorHandler constructs handler.
func NewSupervisorHandler(supervisorService *service.SupervisorService) *SupervisorHandler {
	return &SupervisorHandler{service: supervisorService}
}

// List GET /supervisor.
func (h *SupervisorHandler) List(c *fiber.Ctx) error {
	supervisors, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]*dto.SupervisorResponse, 0, len(supervisors))
	for i := range supervisors {
		items = append(items, supervisorResponse(&supervisors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /supervisor/:id.
func (h *SupervisorHandler) Get(c *fiber.Ctx) error {
	sup, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": supervisorResponse(sup)})
}

// Create POST /supervisor.
func (h *SupervisorHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSupervisorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sup, err := h.service.Create(c.UserContext(), service.SupervisorInput{
		Name:         req.Name,
		FieldOfStudy: req.FieldOfStudy,
		Shift:        req.Shift,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": supervisorResponse(sup)})
}

// Update PATCH /supervisor/:id.
func (h *SupervisorHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSupervisorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sup, err := h.service.Update(c.UserContext(), c.Params("id"), service.SupervisorPatch{
		Name:         req.Name,
		FieldOfStudy: req.FieldOfStudy,
		Shift:        req.Shift,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": supervisorResponse(sup)})
}

// Delete DELETE /supervisor/:id.
func (h *SupervisorHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deletionResponse(deleted)})
}
