package handlers

import (
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler exposes the appointment lifecycle over HTTP.
type AppointmentHandler struct {
	service services.IAppointmentService
}

func NewAppointmentHandler(service services.IAppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	appointment, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	appointments, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	appointment, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Today(c *fiber.Ctx) error {
	appointments, err := h.service.Today(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) Upcoming(c *fiber.Ctx) error {
	appointments, err := h.service.Upcoming(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) ByClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	appointments, err := h.service.FindByClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) ByEmployee(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	appointments, err := h.service.FindByEmployee(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) ByStatus(c *fiber.Ctx) error {
	status := models.AppointmentStatus(c.Params("status"))
	appointments, err := h.service.FindByStatus(c.UserContext(), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

// ByRange lists appointments between the from and to query bounds.
func (h *AppointmentHandler) ByRange(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	if from == nil || to == nil {
		return respondError(c, apperrors.NewValidation("from and to are required"))
	}
	appointments, err := h.service.FindByRange(c.UserContext(), *from, *to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) Search(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return respondError(c, apperrors.NewValidation("name query is required"))
	}
	appointments, err := h.service.SearchByClientName(c.UserContext(), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	appointment, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) SetStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	appointment, err := h.service.SetStatus(c.UserContext(), id, body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AppointmentHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
