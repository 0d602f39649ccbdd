package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"
)

// FacetRequest defines the structure for size/color/product-name requests
type FacetRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *FacetRequest) validate() (string, bool) {
	if r.Name == "" {
		return "name is required", false
	}
	if r.Value == "" {
		return "value is required", false
	}
	return "", true
}

// ListSizes handles retrieving all sizes for a store
func ListSizes(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var sizes []model.Size
	result := database.GetDB().
		Where("store_id = ?", store.ID).
		Order("created_at DESC, id").
		Find(&sizes)
	if result.Error != nil {
		log.Error("Failed to list sizes",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sizes"})
	}

	return c.JSON(http.StatusOK, sizes)
}

// GetSize handles retrieving a single size scoped by store
func GetSize(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var size model.Size
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&size)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "size not found"})
		}
		log.Error("Failed to get size",
			zap.String("size_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, size)
}

// CreateSize handles creating a new size for a store
func CreateSize(c echo.Context) error {
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

	size := model.Size{
		StoreID: store.ID,
		Name:    req.Name,
		Value:   req.Value,
	}

	if result := database.GetDB().Create(&size); result.Error != nil {
		log.Error("Failed to create size",
			zap.String("store_id", store.ID),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create size"})
	}

	log.Info("Size created",
		zap.String("size_id", size.ID),
		zap.String("store_id", store.ID),
		zap.String("name", size.Name))
	prometheus.RecordEntityOperation("size", "create")
	return c.JSON(http.StatusCreated, size)
}

// UpdateSize handles replacing a size's editable fields, scoped by both
// entity id and store id
func UpdateSize(c echo.Context) error {
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

	result := database.GetDB().
		Model(&model.Size{}).
		Where("id = ? AND store_id = ?", id, store.ID).
		Updates(map[string]interface{}{
			"name":  req.Name,
			"value": req.Value,
		})
	if result.Error != nil {
		log.Error("Failed to update size",
			zap.String("size_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update size"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "size not found"})
	}

	var size model.Size
	if err := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&size).Error; err != nil {
		log.Error("Failed to reload size",
			zap.String("size_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Size updated",
		zap.String("size_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("size", "update")
	return c.JSON(http.StatusOK, size)
}

// DeleteSize handles deleting a size. Products referencing it block the
// delete and surface as a conflict.
func DeleteSize(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Size{}, "id = ? AND store_id = ?", id, store.ID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			log.Warn("Size delete blocked by dependent products", zap.String("size_id", id))
			return referentialConflict(c, "size is still referenced by products, remove them first")
		}
		log.Error("Failed to delete size",
			zap.String("size_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete size"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "size not found"})
	}

	log.Info("Size deleted",
		zap.String("size_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("size", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "size deleted successfully"})
}
