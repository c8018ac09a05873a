package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/middleware"
	"github.com/kendall-kelly/order-tracking-api/services"
	"github.com/kendall-kelly/order-tracking-api/utils"
)

// ActivityController serves the /order-activities endpoint
type ActivityController struct {
	activities *services.ActivityService
}

// NewActivityController creates the /order-activities handler
func NewActivityController(activities *services.ActivityService) *ActivityController {
	return &ActivityController{activities: activities}
}

// ListActivities handles GET /order-activities/?skip=&limit=
func (ac *ActivityController) ListActivities(c *gin.Context) {
	page, err := utils.ParsePagination(c, services.DefaultActivitySkip, services.DefaultActivityLimit)
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	activities, err := ac.activities.ListActivities(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}
