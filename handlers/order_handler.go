package handlers

import (
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service services.IOrderService
}

func NewOrderHandler(service services.IOrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	order, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) ByClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	orders, err := h.service.FindByClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) ByStatus(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Params("status"))
	orders, err := h.service.FindByStatus(c.UserContext(), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	order, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	order, err := h.service.SetStatus(c.UserContext(), id, body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Invoice closes the order and books its total as income.
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		PaymentMethod models.PaymentMethod `json:"payment_method"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	order, err := h.service.Invoice(c.UserContext(), id, body.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) Recalculate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.service.RecalculateTotal(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
