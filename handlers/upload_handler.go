package handlers

import (
	"strconv"

	"oficina.app/pkg/apperrors"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	service services.IUploadService
}

func NewUploadHandler(service services.IUploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Create accepts a multipart form with a "file" part and optional order_id
// and client_id fields.
func (h *UploadHandler) Create(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, apperrors.NewValidation("file is required"))
	}

	orderID, err := formID(c, "order_id")
	if err != nil {
		return respondError(c, err)
	}
	clientID, err := formID(c, "client_id")
	if err != nil {
		return respondError(c, err)
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, apperrors.Internal("upload: open part", err))
	}
	defer src.Close()

	upload, err := h.service.Store(c.UserContext(), services.StoreUploadInput{
		OrderID:  orderID,
		ClientID: clientID,
		FileName: file.Filename,
		FileType: file.Header.Get("Content-Type"),
		Content:  src,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(upload)
}

func formID(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperrors.NewValidation("invalid %s", key)
	}
	v := uint(id)
	return &v, nil
}

func (h *UploadHandler) List(c *fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		uploads, err := h.service.SearchByFileName(c.UserContext(), name)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(uploads)
	}
	if fileType := c.Query("type"); fileType != "" {
		uploads, err := h.service.FindByFileType(c.UserContext(), fileType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(uploads)
	}
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	if from != nil && to != nil {
		uploads, err := h.service.FindByPeriod(c.UserContext(), *from, *to)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(uploads)
	}
	uploads, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(uploads)
}

func (h *UploadHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	upload, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(upload)
}

func (h *UploadHandler) ByOrder(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	uploads, err := h.service.FindByOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(uploads)
}

func (h *UploadHandler) ByClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	uploads, err := h.service.FindByClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(uploads)
}

func (h *UploadHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	uploads, err := h.service.FindRecent(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(uploads)
}

func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UploadHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
