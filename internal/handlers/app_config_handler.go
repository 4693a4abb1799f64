package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
)

// AppConfigHandler serves client configuration: selectable interest
// tags, post mode labels, feature flags.
type AppConfigHandler struct {
	db *gorm.DB
}

func NewAppConfigHandler(db *gorm.DB) *AppConfigHandler {
	return &AppConfigHandler{db: db}
}

// GetConfig returns every key as a typed map.
func (h *AppConfigHandler) GetConfig(c *fiber.Ctx) error {
	var configs []models.AppConfig
	if err := h.db.WithContext(c.Context()).Find(&configs).Error; err != nil {
		return respondError(c, err)
	}

	result := make(map[string]interface{}, len(configs))
	for _, cfg := range configs {
		var value interface{}
		switch cfg.Type {
		case "bool":
			value, _ = strconv.ParseBool(cfg.Value)
		case "int":
			value, _ = strconv.Atoi(cfg.Value)
		case "json":
			if err := json.Unmarshal([]byte(cfg.Value), &value); err != nil {
				value = cfg.Value
			}
		default:
			value = cfg.Value
		}
		result[cfg.Key] = value
	}
	return c.JSON(result)
}

// SetKey upserts one config key. Admin only.
func (h *AppConfigHandler) SetKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return badRequest(c, "Key parameter is required")
	}

	var req dto.SetConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Value == "" {
		return badRequest(c, "Value is required")
	}
	if req.Type == "" {
		req.Type = "string"
	}

	var config models.AppConfig
	err := h.db.WithContext(c.Context()).Where("key = ?", key).First(&config).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		config = models.AppConfig{Key: key, Value: req.Value, Type: req.Type}
		if err := h.db.WithContext(c.Context()).Create(&config).Error; err != nil {
			return respondError(c, err)
		}
	case err != nil:
		return respondError(c, err)
	default:
		config.Value = req.Value
		config.Type = req.Type
		if err := h.db.WithContext(c.Context()).Save(&config).Error; err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(config)
}

// DeleteKey removes one config key. Admin only.
func (h *AppConfigHandler) DeleteKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return badRequest(c, "Key parameter is required")
	}

	result := h.db.WithContext(c.Context()).Where("key = ?", key).Delete(&models.AppConfig{})
	if result.Error != nil {
		return respondError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", "config key not found")
	}
	return c.JSON(fiber.Map{"message": "Config key deleted"})
}

// SeedDefaults inserts missing default keys at startup without
// touching values an admin already changed.
func (h *AppConfigHandler) SeedDefaults() error {
	defaults := []models.AppConfig{
		{Key: "interest_tags", Type: "json", Value: `["公園遊び","絵本","離乳食","寝かしつけ","保活","幼稚園","習い事","アレルギー","双子","ワンオペ"]`},
		{Key: "mode_labels", Type: "json", Value: `{"tasukete":"たすけて","asobo":"あそぼ","oshiete":"おしえて"}`},
		{Key: "chat_enabled", Type: "bool", Value: "true"},
		{Key: "map_enabled", Type: "bool", Value: "true"},
		{Key: "max_post_length", Type: "int", Value: "2000"},
	}

	for _, def := range defaults {
		var existing models.AppConfig
		err := h.db.Where("key = ?", def.Key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := h.db.Create(&def).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
