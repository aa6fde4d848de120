package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	SharerUserIDHeader = "X-Sharer-User-Id"
	ctxSharerUserIDKey = "sharer_user_id"
)

var (
	ErrMissingSharerID = errs.New("missing " + SharerUserIDHeader + " header")
	ErrInvalidSharerID = errs.New("invalid " + SharerUserIDHeader + " header")
)

// RequireSharer rejects requests without a numeric caller id header.
func RequireSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SharerUserIDHeader))
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, ErrMissingSharerID, SharerUserIDHeader+" header is required", nil)
			return
		}
		setSharer(c, raw)
	}
}

// OptionalSharer accepts anonymous requests but still rejects a malformed id.
func OptionalSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SharerUserIDHeader))
		if raw == "" {
			return
		}
		setSharer(c, raw)
	}
}

func setSharer(c *gin.Context, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidSharerID), SharerUserIDHeader+" header must be an integer", nil)
		return
	}
	c.Set(ctxSharerUserIDKey, id)
}

func GetSharerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxSharerUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
