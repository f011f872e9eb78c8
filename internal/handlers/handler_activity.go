package handlers

import (
	"net/http"

	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/freelanceflow/ff_backend/internal/store"
	"github.com/gin-gonic/gin"
)

// activityHandler serves the recent-activity feed from the session
// snapshot.
type activityHandler struct {
	stores *store.Manager
}

// registerActivityRoutes registers the activity feed route.
func registerActivityRoutes(rg *gin.RouterGroup, stores *store.Manager) {
	h := &activityHandler{stores: stores}
	rg.GET("/activity", h.listActivity)
}

// listActivity godoc
// @Summary List recent activity
// @Description Returns the newest activity entries, capped at 20
// @Tags activity
// @Produce  json
// @Success 200 {object} dto.ListActivityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /activity [get]
func (h *activityHandler) listActivity(c *gin.Context) {
	s, _, ok := session(c, h.stores)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ListActivityResponse{Activities: dto.ToListActivityResponse(s.Activity())})
}
