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

// DashboardRequest defines the structure for dashboard creation/update requests
type DashboardRequest struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (r *DashboardRequest) validate() (string, bool) {
	if r.Label == "" {
		return "label is required", false
	}
	if r.ImageURL == "" {
		return "image_url is required", false
	}
	return "", true
}

// ListDashboards handles retrieving all dashboards for a store
func ListDashboards(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var dashboards []model.Dashboard
	result := database.GetDB().
		Where("store_id = ?", store.ID).
		Order("created_at DESC, id").
		Find(&dashboards)
	if result.Error != nil {
		log.Error("Failed to list dashboards",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve dashboards"})
	}

	return c.JSON(http.StatusOK, dashboards)
}

// GetDashboard handles retrieving a single dashboard scoped by store
func GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var dashboard model.Dashboard
	result := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&dashboard)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dashboard not found"})
		}
		log.Error("Failed to get dashboard",
			zap.String("dashboard_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, dashboard)
}

// CreateDashboard handles creating a new dashboard for a store
func CreateDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var req DashboardRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg, valid := req.validate(); !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	dashboard := model.Dashboard{
		StoreID:     store.ID,
		Label:       req.Label,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if result := database.GetDB().Create(&dashboard); result.Error != nil {
		log.Error("Failed to create dashboard",
			zap.String("store_id", store.ID),
			zap.String("label", req.Label),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create dashboard"})
	}

	log.Info("Dashboard created",
		zap.String("dashboard_id", dashboard.ID),
		zap.String("store_id", store.ID),
		zap.String("label", dashboard.Label))
	prometheus.RecordEntityOperation("dashboard", "create")
	return c.JSON(http.StatusCreated, dashboard)
}

// UpdateDashboard handles replacing a dashboard's editable fields, scoped by
// both entity id and store id
func UpdateDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var req DashboardRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg, valid := req.validate(); !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	result := database.GetDB().
		Model(&model.Dashboard{}).
		Where("id = ? AND store_id = ?", id, store.ID).
		Updates(map[string]interface{}{
			"label":       req.Label,
			"description": req.Description,
			"image_url":   req.ImageURL,
		})
	if result.Error != nil {
		log.Error("Failed to update dashboard",
			zap.String("dashboard_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update dashboard"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "dashboard not found"})
	}

	var dashboard model.Dashboard
	if err := database.GetDB().
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&dashboard).Error; err != nil {
		log.Error("Failed to reload dashboard",
			zap.String("dashboard_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Dashboard updated",
		zap.String("dashboard_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("dashboard", "update")
	return c.JSON(http.StatusOK, dashboard)
}

// DeleteDashboard handles deleting a dashboard. Categories referencing it
// block the delete and surface as a conflict.
func DeleteDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Dashboard{}, "id = ? AND store_id = ?", id, store.ID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			log.Warn("Dashboard delete blocked by dependent categories",
				zap.String("dashboard_id", id))
			return referentialConflict(c, "dashboard is still referenced by categories, remove them first")
		}
		log.Error("Failed to delete dashboard",
			zap.String("dashboard_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete dashboard"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "dashboard not found"})
	}

	log.Info("Dashboard deleted",
		zap.String("dashboard_id", id),
		zap.String("store_id", store.ID))
	prometheus.RecordEntityOperation("dashboard", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "dashboard deleted successfully"})
}
