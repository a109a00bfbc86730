package handlers

import (
	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	service services.IEmployeeService
}

func NewEmployeeHandler(service services.IEmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	employee, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("active") {
		employees, err := h.service.FindActive(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(employees)
	}
	employees, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	employee, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employee)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	employee, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employee)
}

// SetRole reassigns the employee's role; role_id 0 detaches it.
func (h *EmployeeHandler) SetRole(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		RoleID uint `json:"role_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperrors.NewValidation("invalid request body"))
	}
	employee, err := h.service.SetRole(c.UserContext(), id, body.RoleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employee)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
