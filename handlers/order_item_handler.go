package handlers

import (
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type OrderItemHandler struct {
	service services.IOrderItemService
}

func NewOrderItemHandler(service services.IOrderItemService) *OrderItemHandler {
	return &OrderItemHandler{service: service}
}

func (h *OrderItemHandler) Create(c *fiber.Ctx) error {
	var input services.CreateOrderItemInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	item, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *OrderItemHandler) List(c *fiber.Ctx) error {
	items, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *OrderItemHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *OrderItemHandler) ByOrder(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.service.FindByOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *OrderItemHandler) ByKind(c *fiber.Ctx) error {
	kind := models.ItemKind(c.Params("kind"))
	items, err := h.service.FindByKind(c.UserContext(), kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *OrderItemHandler) CountByKind(c *fiber.Ctx) error {
	kind := models.ItemKind(c.Params("kind"))
	count, err := h.service.CountByKind(c.UserContext(), kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"kind": kind, "count": count})
}

func (h *OrderItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateOrderItemInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	item, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *OrderItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderItemHandler) DeleteByOrder(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteByOrder(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
