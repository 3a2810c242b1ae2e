package handlers

import (
	"errors"
	"net/http"

	"actionmate/apperr"
	"actionmate/ranking"
	"actionmate/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the meeting API on top of MeetingService.
type Handler struct {
	meetings *services.MeetingService
	log      *zap.Logger
}

func New(meetings *services.MeetingService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{meetings: meetings, log: log.Named("http")}
}

var errInternal = apperr.Internal("internal server error")

type errorBody struct {
	Error   apperr.Code `json:"error"`
	Message string      `json:"message"`
	Fields  []string    `json:"fields,omitempty"`
}

// respondError maps domain errors to HTTP. Unknown errors are logged and
// hidden behind a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code == apperr.CodeInternal {
		h.log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{Error: apperr.CodeInternal, Message: errInternal.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(appErr.Code.HTTPStatus(), errorBody{Error: appErr.Code, Message: appErr.Message, Fields: appErr.Fields})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: apperr.CodeInvalidArgument, Message: err.Error()})
}

type pointQuery struct {
	Lat *float64 `form:"lat" binding:"omitempty,gte=-90,lte=90"`
	Lng *float64 `form:"lng" binding:"omitempty,gte=-180,lte=180"`
}

// point is the viewer position supplied by the client's geolocation
// provider, or nil when not sent.
func (q pointQuery) point() *ranking.Point {
	if q.Lat == nil || q.Lng == nil {
		return nil
	}
	return &ranking.Point{Lat: *q.Lat, Lng: *q.Lng}
}
