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

// OrderItemRequest carries one product reference in an order payload
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
}

// OrderRequest defines the structure for order creation/update requests
type OrderRequest struct {
	Phone   string             `json:"phone"`
	Address string             `json:"address"`
	IsPaid  bool               `json:"is_paid"`
	Items   []OrderItemRequest `json:"items"`
}

// ListOrders handles retrieving all orders for a store with their line items
// and products joined in
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var orders []model.Order
	result := database.GetDB().
		Preload("Items").
		Preload("Items.Product").
		Where("store_id = ?", store.ID).
		Order("created_at DESC, id").
		Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving a single order scoped by store
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var order model.Order
	result := database.GetDB().
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		log.Error("Failed to get order",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, order)
}

// CreateOrder handles creating a new order with its line items. Every line
// item must reference a product of the same store.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone is required"})
	}
	if req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "address is required"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items are required"})
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items must carry a product_id"})
		}
	}

	inStore, err := productsInStore(req.Items, store.ID)
	if err != nil {
		log.Error("Failed to verify order products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !inStore {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items must reference products in this store"})
	}

	order := model.Order{
		StoreID: store.ID,
		Phone:   req.Phone,
		Address: req.Address,
		IsPaid:  req.IsPaid,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, model.OrderItem{ProductID: item.ProductID})
	}

	if result := database.GetDB().Create(&order); result.Error != nil {
		log.Error("Failed to create order",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	log.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("store_id", store.ID),
		zap.Int("items", len(order.Items)))
	prometheus.RecordEntityOperation("order", "create")
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles replacing an order's editable fields, scoped by both
// entity id and store id. Line items are fixed at creation.
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone is required"})
	}
	if req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "address is required"})
	}

	result := database.GetDB().
		Model(&model.Order{}).
		Where("id = ? AND store_id = ?", id, store.ID).
		Updates(map[string]interface{}{
			"phone":   req.Phone,
			"address": req.Address,
			"is_paid": req.IsPaid,
		})
	if result.Error != nil {
		log.Error("Failed to update order",
			zap.String("order_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}

	var order model.Order
	if err := database.GetDB().
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&order).Error; err != nil {
		log.Error("Failed to reload order",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Order updated",
		zap.String("order_id", id),
		zap.String("store_id", store.ID),
		zap.Bool("is_paid", order.IsPaid))
	prometheus.RecordEntityOperation("order", "update")
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles deleting an order. Its line items are removed first,
// inside the same transaction.
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var deletedItems int64
	txErr := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Where("id = ? AND store_id = ?", id, store.ID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		result := tx.Delete(&model.OrderItem{}, "order_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deletedItems = result.RowsAffected

		return tx.Delete(&model.Order{}, "id = ? AND store_id = ?", id, store.ID).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		log.Error("Failed to delete order",
			zap.String("order_id", id),
			zap.Error(txErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete order"})
	}

	log.Info("Order deleted",
		zap.String("order_id", id),
		zap.String("store_id", store.ID),
		zap.Int64("deleted_items", deletedItems))
	prometheus.RecordEntityOperation("order", "delete")
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "order and line items deleted successfully",
		"deleted_orders": 1,
		"deleted_items":  deletedItems,
	})
}

// productsInStore verifies every referenced product belongs to the store
func productsInStore(items []OrderItemRequest, storeID string) (bool, error) {
	unique := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := unique[item.ProductID]; !seen {
			unique[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	var count int64
	result := database.GetDB().
		Model(&model.Product{}).
		Where("id IN ? AND store_id = ?", ids, storeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count == int64(len(ids)), nil
}
