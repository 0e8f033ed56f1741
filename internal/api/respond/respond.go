package respond

import (
	"errors"
	"net/http"

	"linkbio/internal/domain/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserID reads the principal set by AuthMiddleware, answering 401 when absent.
func UserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		Error(c, errs.ErrUnauthenticated)
		return 0, false
	}
	return userID, true
}

// Error maps domain errors to status codes. Anything unrecognized is a 500.
func Error(c *gin.Context, err error) {
	var (
		verr     *errs.ValidationError
		nf       *errs.NotFoundError
		conflict *errs.ConflictError
		storeErr *errs.StoreError
	)

	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Error()}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error(), "id": nf.ID})
	case errors.As(err, &conflict):
		body := gin.H{"error": conflict.Error()}
		if conflict.Message == "" {
			body["version"] = conflict.Actual
		}
		c.JSON(http.StatusConflict, body)
	case errors.As(err, &storeErr):
		zap.L().Error("store failure", zap.String("op", storeErr.Op), zap.Error(storeErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error, please retry"})
	default:
		zap.L().Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
