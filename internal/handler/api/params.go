package api

import (
	"net/http"
	"strconv"

	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errSharerNotResolved = errs.New("sharer id not resolved")

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// sharerID reads the id resolved by middleware.RequireSharer.
func sharerID(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetSharerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errSharerNotResolved, middleware.SharerUserIDHeader+" header is required", nil)
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", reqdto.FieldErrors(err))
		return false
	}
	return true
}
