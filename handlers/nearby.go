package handlers

import (
	"net/http"

	"actionmate/middleware"
	"actionmate/ranking"
	"actionmate/services"

	"github.com/gin-gonic/gin"
)

type aroundQuery struct {
	Lat      *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lng      *float64 `form:"lng" binding:"required,gte=-180,lte=180"`
	RadiusKm float64  `form:"radiusKm" binding:"omitempty,gt=0,lte=50"`
	Category string   `form:"category"`
	Sort     string   `form:"sort"`
}

// ListMeetingsAround GET /api/meetings/around?lat=&lng=&radiusKm=
func (h *Handler) ListMeetingsAround(c *gin.Context) {
	var q aroundQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	views, err := h.meetings.ListMeetingsAround(c.Request.Context(), middleware.CurrentUser(c),
		ranking.Point{Lat: *q.Lat, Lng: *q.Lng},
		services.AroundOptions{RadiusKm: q.RadiusKm, Category: q.Category, Sort: q.Sort})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type hotQuery struct {
	Limit         int `form:"limit" binding:"omitempty,gte=1,lte=50"`
	WithinMinutes int `form:"withinMinutes" binding:"omitempty,gte=1,lte=1440"`
}

// ListHotMeetings GET /api/meetings/hot
func (h *Handler) ListHotMeetings(c *gin.Context) {
	var q hotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.meetings.ListHotMeetings(c.Request.Context(), ranking.HotOptions{
		Limit:         q.Limit,
		WithinMinutes: q.WithinMinutes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
