package handlers

import (
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	service services.IClientService
}

func NewClientHandler(service services.IClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var input services.CreateClientInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	client, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		clients, err := h.service.SearchByName(c.UserContext(), name)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(clients)
	}
	clients, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clients)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	client, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) GetByDocument(c *fiber.Ctx) error {
	client, err := h.service.FindByDocument(c.UserContext(), c.Params("document"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateClientInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	client, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
