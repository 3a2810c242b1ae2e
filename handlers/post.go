package handlers

import (
	"net/http"

	"actionmate/apperr"
	"actionmate/middleware"
	"actionmate/models"
	"actionmate/services"

	"github.com/gin-gonic/gin"
)

type listMeetingsQuery struct {
	pointQuery
	Category string `form:"category"`
	Sort     string `form:"sort"`
}

// ListMeetings GET /api/meetings
func (h *Handler) ListMeetings(c *gin.Context) {
	var q listMeetingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	views, err := h.meetings.ListMeetings(c.Request.Context(), middleware.CurrentUser(c), services.ListOptions{
		Category: q.Category,
		Sort:     q.Sort,
		Viewer:   q.point(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type myMeetingsQuery struct {
	Role string `form:"role"`
}

// MyMeetings GET /api/my/meetings?role=host|joined
func (h *Handler) MyMeetings(c *gin.Context) {
	var q myMeetingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	views, err := h.meetings.MyMeetings(c.Request.Context(), middleware.CurrentUser(c), q.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetMeeting GET /api/meetings/:id
func (h *Handler) GetMeeting(c *gin.Context) {
	var q pointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.meetings.GetMeeting(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), q.point())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateMeeting POST /api/meetings
func (h *Handler) CreateMeeting(c *gin.Context) {
	var req models.CreateParams
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.meetings.CreateMeeting(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// UpdateMeeting PATCH /api/meetings/:id
func (h *Handler) UpdateMeeting(c *gin.Context) {
	var req models.Patch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.meetings.UpdateMeeting(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelMeeting DELETE /api/meetings/:id
func (h *Handler) CancelMeeting(c *gin.Context) {
	view, err := h.meetings.CancelMeeting(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": view})
}

// JoinMeeting POST /api/meetings/:id/join
func (h *Handler) JoinMeeting(c *gin.Context) {
	res, err := h.meetings.JoinMeeting(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		if res != nil && apperr.HasCode(err, apperr.CodeCapacityFull) {
			c.JSON(http.StatusConflict, gin.H{
				"error":            apperr.CodeCapacityFull,
				"message":          apperr.ErrCapacityFull.Error(),
				"post":             res.Post,
				"membershipStatus": res.MembershipStatus,
			})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelJoin DELETE /api/meetings/:id/join
func (h *Handler) CancelJoin(c *gin.Context) {
	view, err := h.meetings.CancelJoin(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": view})
}
