package handlers

import (
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type VehicleHandler struct {
	service services.IVehicleService
}

func NewVehicleHandler(service services.IVehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var input services.CreateVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	vehicle, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

func (h *VehicleHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vehicles)
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	vehicle, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) GetByPlate(c *fiber.Ctx) error {
	vehicle, err := h.service.FindByPlate(c.UserContext(), c.Params("plate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) ByClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	vehicles, err := h.service.FindByClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vehicles)
}

func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	vehicle, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
