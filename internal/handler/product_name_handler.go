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

// ListProductNames handles retrieving all product names for a store
func ListProductNames(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var names []model.ProductName
	result := database.GetDB().
		Where("store_id = ?", store.ID).
		Order("created_at DESC, id").
		Find(&names)
	if result.Error != nil {
		log.Error("Failed to list product names",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve product names"})
	}

	return c.JSON(http.StatusOK, names)
}

// GetProductName handles retrieving a single product name scoped by store
func GetProductName(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var name model.ProductName
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product name not found"})
		}
		log.Error("Failed to get product name",
			zap.String("product_name_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, name)
}

// CreateProductName handles creating a new product name for a store
func CreateProductName(c echo.Context) error {
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

	name := model.ProductName{
		StoreID: store.ID,
		Name:    req.Name,
		Value:   req.Value,
	}

	if result := database.GetDB().Create(&name); result.Error != nil {
		log.Error("Failed to create product name",
			zap.String("store_id", store.ID),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product name"})
	}

	log.Info("Product name created",
		zap.String("product_name_id", name.ID),
		zap.String("store_id", store.ID),
		zap.String("name", name.Name))
	prometheus.RecordEntityOperation("product_name", "create")
	return c.JSON(http.StatusCreated, name)
}

// UpdateProductName handles replacing a product name's editable fields,
// scoped by both entity id and store id
func UpdateProductName(c echo.Context) error {
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
		Model(&model.ProductName{}).
		Where("id = ? AND store_id = ?", id, store.ID).
		Updates(map[string]interface{}{
			"name":  req.Name,
			"value": req.Value,
		})
	if result.Error != nil {
		log.Error("Failed to update product name",
			zap.String("product_name_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product name"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product name not found"})
	}

	var name model.ProductName
	if err := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&name).Error; err != nil {
		log.Error("Failed to reload product name",
			zap.String("product_name_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Product name updated",
		zap.String("product_name_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("product_name", "update")
	return c.JSON(http.StatusOK, name)
}

// DeleteProductName handles deleting a product name. Products referencing it
// block the delete and surface as a conflict.
func DeleteProductName(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	result := database.GetDB().Delete(&model.ProductName{}, "id = ? AND store_id = ?", id, store.ID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			log.Warn("Product name delete blocked by dependent products",
				zap.String("product_name_id", id))
			return referentialConflict(c, "product name is still referenced by products, remove them first")
		}
		log.Error("Failed to delete product name",
			zap.String("product_name_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product name"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product name not found"})
	}

	log.Info("Product name deleted",
		zap.String("product_name_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("product_name", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "product name deleted successfully"})
}
