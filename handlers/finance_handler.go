package handlers

import (
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type FinanceHandler struct {
	service services.IFinanceService
}

func NewFinanceHandler(service services.IFinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var input services.CreateFinanceEntryInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	entry, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *FinanceHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	if from != nil && to != nil {
		entries, err := h.service.FindByPeriod(c.UserContext(), *from, *to)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entries)
	}
	entries, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

func (h *FinanceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	entry, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

func (h *FinanceHandler) ByKind(c *fiber.Ctx) error {
	kind := models.EntryKind(c.Params("kind"))
	entries, err := h.service.FindByKind(c.UserContext(), kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

func (h *FinanceHandler) ByOrder(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	entries, err := h.service.FindByOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// Totals returns income, expense and balance over an optional period.
func (h *FinanceHandler) Totals(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	totals, err := h.service.Totals(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

// TotalsByMethod returns income grouped by payment method over an optional period.
func (h *FinanceHandler) TotalsByMethod(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	totals, err := h.service.TotalsByMethod(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

func (h *FinanceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateFinanceEntryInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	entry, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
