package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"
)

// ProductImageRequest carries one image URL in a product payload
type ProductImageRequest struct {
	URL string `json:"url"`
}

// ProductRequest defines the structure for product creation/update requests.
// Price accepts both a JSON number and a numeric string ("9.99").
type ProductRequest struct {
	Name          string                `json:"name"`
	Price         json.Number           `json:"price"`
	CategoryID    string                `json:"category_id"`
	ProductNameID string                `json:"product_name_id"`
	SizeID        string                `json:"size_id"`
	ColorID       string                `json:"color_id"`
	Images        []ProductImageRequest `json:"images"`
	IsFeatured    bool                  `json:"is_featured"`
	IsArchived    bool                  `json:"is_archived"`
}

func (r *ProductRequest) validate() (float64, string, bool) {
	if r.Name == "" {
		return 0, "name is required", false
	}
	if r.Price == "" {
		return 0, "price is required", false
	}
	price, err := strconv.ParseFloat(r.Price.String(), 64)
	if err != nil || price <= 0 {
		return 0, "price must be a positive number", false
	}
	if r.CategoryID == "" {
		return 0, "category_id is required", false
	}
	if r.ProductNameID == "" {
		return 0, "product_name_id is required", false
	}
	if r.SizeID == "" {
		return 0, "size_id is required", false
	}
	if r.ColorID == "" {
		return 0, "color_id is required", false
	}
	if len(r.Images) == 0 {
		return 0, "images are required", false
	}
	for _, img := range r.Images {
		if img.URL == "" {
			return 0, "images must carry a url", false
		}
	}
	return price, "", true
}

// productRefsInStore verifies every facet reference resolves under the store,
// returning the first offending field. The schema cannot express these
// cross-row rules.
func productRefsInStore(req *ProductRequest, storeID string) (string, bool, error) {
	refs := []struct {
		field string
		model interface{}
		id    string
	}{
		{"category_id", &model.Category{}, req.CategoryID},
		{"product_name_id", &model.ProductName{}, req.ProductNameID},
		{"size_id", &model.Size{}, req.SizeID},
		{"color_id", &model.Color{}, req.ColorID},
	}
	for _, ref := range refs {
		var count int64
		result := database.GetDB().
			Model(ref.model).
			Where("id = ? AND store_id = ?", ref.id, storeID).
			Count(&count)
		if result.Error != nil {
			return "", false, result.Error
		}
		if count == 0 {
			return ref.field, false, nil
		}
	}
	return "", true, nil
}

// productQuery returns a query with the product's display relations joined in
func productQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images").
		Preload("Category").
		Preload("ProductName").
		Preload("Size").
		Preload("Color")
}

// ListProducts handles retrieving all products for a store with optional
// facet filtering, joined with their lookup entities
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	query := productQuery(database.GetDB()).Where("store_id = ?", store.ID)

	// Facet filters from query parameters
	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if sizeID := c.QueryParam("size_id"); sizeID != "" {
		query = query.Where("size_id = ?", sizeID)
	}
	if colorID := c.QueryParam("color_id"); colorID != "" {
		query = query.Where("color_id = ?", colorID)
	}
	if isFeatured := c.QueryParam("is_featured"); isFeatured != "" {
		featured, err := strconv.ParseBool(isFeatured)
		if err == nil {
			query = query.Where("is_featured = ?", featured)
		} else {
			log.Warn("Invalid is_featured parameter", zap.String("value", isFeatured), zap.Error(err))
		}
	}
	if isArchived := c.QueryParam("is_archived"); isArchived != "" {
		archived, err := strconv.ParseBool(isArchived)
		if err == nil {
			query = query.Where("is_archived = ?", archived)
		} else {
			log.Warn("Invalid is_archived parameter", zap.String("value", isArchived), zap.Error(err))
		}
	}

	var products []model.Product
	result := query.Order("created_at DESC, id").Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products",
			zap.String("store_id", store.ID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	log.Info("Products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product scoped by store
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	id := c.Param("id")
	if id == newEntitySentinel {
		return creationPlaceholder(c)
	}

	var product model.Product
	result := productQuery(database.GetDB()).
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		log.Error("Failed to get product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product with its image set
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	price, msg, valid := req.validate()
	if !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	field, inStore, err := productRefsInStore(&req, store.ID)
	if err != nil {
		log.Error("Failed to verify product references", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !inStore {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": field + " must reference a row in this store"})
	}

	product := model.Product{
		StoreID:       store.ID,
		CategoryID:    req.CategoryID,
		ProductNameID: req.ProductNameID,
		SizeID:        req.SizeID,
		ColorID:       req.ColorID,
		Name:          req.Name,
		Price:         price,
		IsFeatured:    req.IsFeatured,
		IsArchived:    req.IsArchived,
	}
	for _, img := range req.Images {
		product.Images = append(product.Images, model.Image{URL: img.URL})
	}

	defer prometheus.TrackDBOperation("product_create")(time.Now())
	if result := database.GetDB().Create(&product); result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id, product_name_id, size_id and color_id must reference existing rows"})
		}
		log.Error("Failed to create product",
			zap.String("store_id", store.ID),
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	// Answer with the joined relations, same shape as a later get
	var created model.Product
	if err := productQuery(database.GetDB()).
		Where("id = ? AND store_id = ?", product.ID, store.ID).
		First(&created).Error; err != nil {
		log.Error("Failed to reload product",
			zap.String("product_id", product.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Product created",
		zap.String("product_id", created.ID),
		zap.String("store_id", store.ID),
		zap.String("name", created.Name),
		zap.Float64("price", created.Price),
		zap.Int("images", len(created.Images)))
	prometheus.RecordEntityOperation("product", "create")
	return c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles replacing a product's editable fields and its whole
// image set. The old images are removed and the new set inserted in the same
// transaction as the row update, so a crash cannot leave a product without
// images.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	price, msg, valid := req.validate()
	if !valid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	field, inStore, err := productRefsInStore(&req, store.ID)
	if err != nil {
		log.Error("Failed to verify product references", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !inStore {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": field + " must reference a row in this store"})
	}

	defer prometheus.TrackDBOperation("product_update")(time.Now())
	txErr := database.GetDB().Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&model.Product{}).
			Where("id = ? AND store_id = ?", id, store.ID).
			Updates(map[string]interface{}{
				"category_id":     req.CategoryID,
				"product_name_id": req.ProductNameID,
				"size_id":         req.SizeID,
				"color_id":        req.ColorID,
				"name":            req.Name,
				"price":           price,
				"is_featured":     req.IsFeatured,
				"is_archived":     req.IsArchived,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNotFound
		}

		// Destructive replace of the image set
		if err := tx.Delete(&model.Image{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		images := make([]model.Image, 0, len(req.Images))
		for _, img := range req.Images {
			images = append(images, model.Image{ProductID: id, URL: img.URL})
		}
		return tx.Create(&images).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if isForeignKeyViolation(txErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id, product_name_id, size_id and color_id must reference existing rows"})
		}
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(txErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	var product model.Product
	if err := productQuery(database.GetDB()).
		Where("id = ? AND store_id = ?", id, store.ID).
		First(&product).Error; err != nil {
		log.Error("Failed to reload product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("Product updated",
		zap.String("product_id", id),
		zap.String("store_id", store.ID),
		zap.Int("images", len(product.Images)))
	prometheus.RecordEntityOperation("product", "update")
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product. Its images are removed first,
// inside the same transaction.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)

	store, ok, err := requireStore(c)
	if !ok {
		return err
	}
	id := c.Param("id")

	var deletedImages int64
	defer prometheus.TrackDBOperation("product_delete")(time.Now())
	txErr := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Where("id = ? AND store_id = ?", id, store.ID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		result := tx.Delete(&model.Image{}, "product_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deletedImages = result.RowsAffected

		return tx.Delete(&model.Product{}, "id = ? AND store_id = ?", id, store.ID).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if isForeignKeyViolation(txErr) {
			return referentialConflict(c, "product is still referenced by orders, remove them first")
		}
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(txErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}

	log.Info("Product deleted",
		zap.String("product_id", id),
		zap.String("store_id", store.ID),
		zap.Int64("deleted_images", deletedImages))
	prometheus.RecordEntityOperation("product", "delete")
	prometheus.CascadeDeletedImagesCounter.Add(float64(deletedImages))
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "product and associated images deleted successfully",
		"deleted_products": 1,
		"deleted_images":   deletedImages,
	})
}
