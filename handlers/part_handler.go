package handlers

import (
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type PartHandler struct {
	service services.IPartService
}

func NewPartHandler(service services.IPartService) *PartHandler {
	return &PartHandler{service: service}
}

func (h *PartHandler) Create(c *fiber.Ctx) error {
	var input services.CreatePartInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	part, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(part)
}

func (h *PartHandler) List(c *fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		parts, err := h.service.SearchByName(c.UserContext(), name)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(parts)
	}
	parts, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(parts)
}

func (h *PartHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	part, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

func (h *PartHandler) GetByCode(c *fiber.Ctx) error {
	part, err := h.service.FindByInternalCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

func (h *PartHandler) LowStock(c *fiber.Ctx) error {
	parts, err := h.service.FindLowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(parts)
}

func (h *PartHandler) BySupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	parts, err := h.service.FindBySupplier(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(parts)
}

func (h *PartHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdatePartInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	part, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

// Move applies a stock movement (op "in" or "out").
func (h *PartHandler) Move(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Op       services.StockOp `json:"op"`
		Quantity int              `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	part, err := h.service.Move(c.UserContext(), id, body.Op, body.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

func (h *PartHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PartHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
