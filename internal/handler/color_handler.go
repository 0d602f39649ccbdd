package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ListColors handles retrieving all colors for a store
func ListColors(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var colors []model.Color
	result := database.GetDB().
		Where("store_id = ?", store.ID).
		Order("created_at DESC, id").
		Find(&colors)
	if result.Error != nil {
		log.Error("Failed to list colors",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve colors"})
	}

	return c.JSON(http.StatusOK, colors)
}

// GetColor handles retrieving a single color scoped by store
func GetColor(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var color model.Color
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&color)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "color not found"})
		}
		log.Error("Failed to get color",
			zap.String("color_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, color)
}

// CreateColor handles creating a new color for a store. Value must be a hex
// color string like #FF0000.
func CreateColor(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var req FacetRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg, valid := req.validate(); !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if !hexColorPattern.MatchString(req.Value) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be a hex color like #FF0000"})
	}

	color := model.Color{
		StoreID: store.ID,
		Name:    req.Name,
		Value:   req.Value,
	}

	if result := database.GetDB().Create(&color); result.Error != nil {
		log.Error("Failed to create color",
			zap.String("store_id", store.ID),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create color"})
	}

	log.Info("Color created",
		zap.String("color_id", color.ID),
		zap.String("store_id", store.ID),
		zap.String("name", color.Name))
	prometheus.RecordEntityOperation("color", "create")
	return c.JSON(http.StatusCreated, color)
}

// UpdateColor handles replacing a color's editable fields, scoped by both
// entity id and store id
func UpdateColor(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var req FacetRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg, valid := req.validate(); !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if !hexColorPattern.MatchString(req.Value) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be a hex color like #FF0000"})
	}

	result := database.GetDB().
		Model(&model.Color{}).
		Where("id = ? AND store_id = ?", id, store.ID).
		Updates(map[string]interface{}{
			"name":  req.Name,
			"value": req.Value,
		})
	if result.Error != nil {
		log.Error("Failed to update color",
			zap.String("color_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update color"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "color not found"})
	}

	var color model.Color
	if err := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&color).Error; err != nil {
		log.Error("Failed to reload color",
			zap.String("color_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Color updated",
		zap.String("color_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("color", "update")
	return c.JSON(http.StatusOK, color)
}

// DeleteColor handles deleting a color. Products referencing it block the
// delete and surface as a conflict.
func DeleteColor(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Color{}, "id = ? AND store_id = ?", id, store.ID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			log.Warn("Color delete blocked by dependent products", zap.String("color_id", id))
			return referentialConflict(c, "color is still referenced by products, remove them first")
		}
		log.Error("Failed to delete color",
			zap.String("color_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete color"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "color not found"})
	}

	log.Info("Color deleted",
		zap.String("color_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("color", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "color deleted successfully"})
}
