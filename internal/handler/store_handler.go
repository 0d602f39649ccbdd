package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"store-admin-service/internal/middleware"
	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"
)

// StoreRequest defines the structure for store creation/update requests
type StoreRequest struct {
	Name string `json:"name"`
}

// CreateStore handles store creation for the authenticated owner
func CreateStore(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Warn("No authenticated identity in request context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	store := model.Store{
		Name:        req.Name,
		OwnerUserID: userID,
	}

	if result := database.GetDB().Create(&store); result.Error != nil {
		log.Error("Failed to create store",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create store"})
	}

	log.Info("Store created",
		zap.String("store_id", store.ID),
		zap.String("name", store.Name),
		zap.String("owner_user_id", store.OwnerUserID))
	prometheus.RecordEntityOperation("store", "create")
	return c.JSON(http.StatusCreated, store)
}

// ListStores handles retrieving all stores owned by the caller
func ListStores(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var stores []model.Store
	result := database.GetDB().
		Where("owner_user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&stores)
	if result.Error != nil {
		log.Error("Failed to list stores",
			zap.String("user_id", userID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve stores"})
	}

	return c.JSON(http.StatusOK, stores)
}

// GetStore handles retrieving a single store owned by the caller
func GetStore(c echo.Context) error {
	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// UpdateStore handles renaming a store, scoped by the owner's identity
func UpdateStore(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	store.Name = req.Name
	if result := database.GetDB().Save(store); result.Error != nil {
		log.Error("Failed to update store",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update store"})
	}

	log.Info("Store updated",
		zap.String("store_id", store.ID),
		zap.String("name", store.Name))
	prometheus.RecordEntityOperation("store", "update")
	return c.JSON(http.StatusOK, store)
}

// DeleteStore handles deleting a store. Dependent catalog rows block the
// delete through their foreign keys and surface as a conflict.
func DeleteStore(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	result := database.GetDB().Delete(&model.Store{}, "id = ?", store.ID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			log.Warn("Store delete blocked by dependent rows",
				zap.String("store_id", store.ID))
			return referentialConflict(c, "store still has catalog data, remove it first")
		}
		log.Error("Failed to delete store",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete store"})
	}

	log.Info("Store deleted", zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("store", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "store deleted successfully"})
}
