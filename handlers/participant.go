package handlers

import (
	"net/http"

	"actionmate/apperr"
	"actionmate/middleware"
	"actionmate/models"

	"github.com/gin-gonic/gin"
)

// GetParticipants GET /api/meetings/:id/participants
func (h *Handler) GetParticipants(c *gin.Context) {
	roster, err := h.meetings.GetParticipants(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// ApproveParticipant POST /api/meetings/:id/participants/:userId/approve
func (h *Handler) ApproveParticipant(c *gin.Context) {
	roster, err := h.meetings.ApproveParticipant(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), c.Param("userId"))
	h.respondRoster(c, roster, err)
}

// RejectParticipant POST /api/meetings/:id/participants/:userId/reject
func (h *Handler) RejectParticipant(c *gin.Context) {
	roster, err := h.meetings.RejectParticipant(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), c.Param("userId"))
	h.respondRoster(c, roster, err)
}

func (h *Handler) respondRoster(c *gin.Context, roster []models.Participant, err error) {
	if err != nil {
		if roster != nil && apperr.HasCode(err, apperr.CodeCapacityFull) {
			c.JSON(http.StatusConflict, gin.H{
				"error":        apperr.CodeCapacityFull,
				"message":      apperr.ErrCapacityFull.Error(),
				"participants": roster,
			})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}
