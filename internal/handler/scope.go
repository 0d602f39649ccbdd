package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-admin-service/internal/middleware"
	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"
)

// errNotFound signals a zero-row scoped mutation inside a transaction so the
// caller can roll back and answer 404.
var errNotFound = errors.New("record not found")

// newEntitySentinel is the path parameter create-forms probe with before an
// entity exists. It must answer a placeholder, never 404.
const newEntitySentinel = "new"

// requireStore resolves the :storeId path parameter against the caller's
// identity. Every store-scoped handler goes through here: a store that does
// not exist and a store owned by someone else are both answered 403 so that
// existence never leaks. On failure the response has already been written
// and the returned error is what the handler should return.
func requireStore(c echo.Context) (*model.Store, bool, error) {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Warn("No authenticated identity in request context")
		return nil, false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	storeID := c.Param("storeId")
	if storeID == "" {
		return nil, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "store ID is required"})
	}

	var store model.Store
	result := database.GetDB().Where("id = ? AND owner_user_id = ?", storeID, userID).First(&store)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Store access denied",
				zap.String("store_id", storeID),
				zap.String("user_id", userID))
			prometheus.StoreAccessDeniedCounter.Inc()
			return nil, false, c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		}
		log.Error("Failed to resolve store",
			zap.String("store_id", storeID),
			zap.Error(result.Error))
		return nil, false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return &store, true, nil
}

// creationPlaceholder answers the "new" sentinel lookup with a response a
// client can tell apart from a persisted entity.
func creationPlaceholder(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"placeholder": true})
}

// isForeignKeyViolation reports whether err is a referential-integrity
// failure. Postgres surfaces these as SQLSTATE 23503; the SQLite driver used
// in tests only gives us the message text.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint")
}

// referentialConflict answers a delete that was blocked by dependent rows
func referentialConflict(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": message})
}
