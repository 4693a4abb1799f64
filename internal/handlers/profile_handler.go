package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/services"
	"github.com/mamalink/mamalink-backend/internal/storage"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	storage        *storage.LocalStorage
}

func NewProfileHandler(profileService *services.ProfileService, storage *storage.LocalStorage) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, storage: storage}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.profileService.Update(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// Nearby lists profiles that opted into location sharing, for the map
// view.
func (h *ProfileHandler) Nearby(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return unauthorized(c)
	}

	profiles, err := h.profileService.Nearby(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"profiles": profiles})
}

// Upload accepts a multipart image and returns its public URL. Used
// for both avatars and post images.
func (h *ProfileHandler) Upload(c *fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	if fileHeader.Size > 10<<20 {
		return badRequest(c, "file exceeds the 10MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	url, err := h.storage.Save(fileHeader.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
