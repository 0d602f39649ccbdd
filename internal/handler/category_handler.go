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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name"`
	DashboardID string `json:"dashboard_id"`
}

// dashboardInStore verifies the referenced dashboard belongs to the store.
// The schema cannot express this cross-row rule.
func dashboardInStore(dashboardID, storeID string) (bool, error) {
	var count int64
	result := database.GetDB().
		Model(&model.Dashboard{}).
		Where("id = ? AND store_id = ?", dashboardID, storeID).
		Count(&count)
	return count > 0, result.Error
}

// ListCategories handles retrieving all categories for a store with their
// dashboards joined in
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var categories []model.Category
	result := database.GetDB().
		Preload("Dashboard").
		Where("store_id = ?", store.ID).
		Order("created_at DESC, id").
		Find(&categories)
	if result.Error != nil {
		log.Error("Failed to list categories",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles retrieving a single category scoped by store
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var category model.Category
	result := database.GetDB().
		Preload("Dashboard").
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		log.Error("Failed to get category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category for a store
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.DashboardID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dashboard_id is required"})
	}

	inStore, err := dashboardInStore(req.DashboardID, store.ID)
	if err != nil {
		log.Error("Failed to verify dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !inStore {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dashboard_id must reference a dashboard in this store"})
	}

	category := model.Category{
		StoreID:     store.ID,
		DashboardID: req.DashboardID,
		Name:        req.Name,
	}

	if result := database.GetDB().Create(&category); result.Error != nil {
		log.Error("Failed to create category",
			zap.String("store_id", store.ID),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}

	log.Info("Category created",
		zap.String("category_id", category.ID),
		zap.String("store_id", store.ID),
		zap.String("name", category.Name))
	prometheus.RecordEntityOperation("category", "create")
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles replacing a category's editable fields, scoped by
// both entity id and store id
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.DashboardID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dashboard_id is required"})
	}

	inStore, err := dashboardInStore(req.DashboardID, store.ID)
	if err != nil {
		log.Error("Failed to verify dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !inStore {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dashboard_id must reference a dashboard in this store"})
	}

	result := database.GetDB().
		Model(&model.Category{}).
		Where("id = ? AND store_id = ?", id, store.ID).
		Updates(map[string]interface{}{
			"name":         req.Name,
			"dashboard_id": req.DashboardID,
		})
	if result.Error != nil {
		log.Error("Failed to update category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	var category model.Category
	if err := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&category).Error; err != nil {
		log.Error("Failed to reload category",
			zap.String("category_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Category updated",
		zap.String("category_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("category", "update")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category. Products referencing it block
// the delete and surface as a conflict.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Category{}, "id = ? AND store_id = ?", id, store.ID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			log.Warn("Category delete blocked by dependent products",
				zap.String("category_id", id))
			return referentialConflict(c, "category is still referenced by products, remove them first")
		}
		log.Error("Failed to delete category",
			zap.String("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	log.Info("Category deleted",
		zap.String("category_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("category", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}
