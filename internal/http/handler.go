package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"service-calendar/internal/calendar"
	"service-calendar/internal/http/middleware"
	"service-calendar/internal/model"
	"service-calendar/internal/rpc"
	"service-calendar/internal/service"
	"service-calendar/internal/view"
	"service-calendar/internal/workflow"
)

const msgAddressLoadFailed = "Could not load the customer address."

type Handler struct {
	workflow  *workflow.Adapter
	calendar  *calendar.Service
	lifecycle *service.LifecycleService
	views     *view.Registry
	location  *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

func NewHandler(
	adapter *workflow.Adapter,
	calendarService *calendar.Service,
	lifecycle *service.LifecycleService,
	views *view.Registry,
	location *time.Location,
	log zerolog.Logger,
) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		workflow:  adapter,
		calendar:  calendarService,
		lifecycle: lifecycle,
		views:     views,
		location:  location,
		log:       log,
		now:       time.Now,
	}
}

func (h *Handler) getView(c *gin.Context) {
	descriptor, err := h.views.Lookup(strings.TrimSpace(c.Param("key")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(descriptor))
}

func (h *Handler) getIdentity(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	identity := h.workflow.ResolveIdentity(c.Request.Context(), principal.UserID)
	c.JSON(http.StatusOK, successResponse(gin.H{
		"identity": identity,
		"domain":   workflow.BuildFilterDomain(identity),
	}))
}

func (h *Handler) listEvents(c *gin.Context) {
	events, ok := h.loadEvents(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": events}))
}

func (h *Handler) exportEvents(c *gin.Context) {
	events, ok := h.loadEvents(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `inline; filename="service-calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.EncodeICS(events, h.now())))
}

func (h *Handler) loadEvents(c *gin.Context) ([]model.CalendarEvent, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return nil, false
	}

	from, to, err := h.parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return nil, false
	}

	ctx := c.Request.Context()
	identity := h.workflow.ResolveIdentity(ctx, principal.UserID)

	events, err := h.calendar.Events(ctx, workflow.BuildFilterDomain(identity), from, to)
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return events, true
}

func (h *Handler) getDialog(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	identity := h.workflow.ResolveIdentity(ctx, principal.UserID)

	dialog, err := h.workflow.Dialog(ctx, identity, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(dialog))
}

func (h *Handler) startService(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	ctx := service.WithPrincipal(c.Request.Context(), principal)
	if !h.ensureVisible(c, ctx, principal, id) {
		return
	}

	result := h.workflow.StartService(ctx, id)
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) completeService(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if !h.ensureVisible(c, c.Request.Context(), principal, id) {
		return
	}

	c.JSON(http.StatusOK, successResponse(workflow.CompleteService(id)))
}

func (h *Handler) navigation(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	identity := h.workflow.ResolveIdentity(ctx, principal.UserID)

	record, err := h.workflow.Record(ctx, identity, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	nav, err := h.workflow.BuildNavigationAddress(ctx, *record)
	if err != nil {
		h.log.Warn().Err(err).Str("service_order_id", id.String()).Msg("navigation address failed")
		msg := rpc.MessageOf(err)
		if msg == "" {
			msg = msgAddressLoadFailed
		}
		c.JSON(http.StatusOK, successResponse(gin.H{
			"navigation":   model.Navigation{},
			"notification": model.Notification{Type: model.NotificationDanger, Message: msg},
		}))
		return
	}

	resp := gin.H{"navigation": nav}
	if !nav.Available {
		resp["notification"] = model.Notification{Type: model.NotificationInfo, Message: nav.Message}
	}
	c.JSON(http.StatusOK, successResponse(resp))
}

func (h *Handler) updateStatus(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ctx := service.WithPrincipal(c.Request.Context(), principal)
	if !h.ensureVisible(c, ctx, principal, id) {
		return
	}

	status := model.ServiceStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if err := h.lifecycle.Transition(ctx, id, status, req.Note); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": status}))
}

func (h *Handler) statusHistory(c *gin.Context) {
	principal, id, ok := h.principalAndID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if !h.ensureVisible(c, ctx, principal, id) {
		return
	}

	logs, err := h.lifecycle.History(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": logs}))
}

// ensureVisible rejects technicians acting on orders not assigned to them.
// Other users are not restricted.
func (h *Handler) ensureVisible(c *gin.Context, ctx context.Context, principal model.Principal, id uuid.UUID) bool {
	identity := h.workflow.ResolveIdentity(ctx, principal.UserID)
	if !identity.IsTechnician {
		return true
	}
	if _, err := h.workflow.Record(ctx, identity, id); err != nil {
		h.handleError(c, err)
		return false
	}
	return true
}

func (h *Handler) principalAndID(c *gin.Context) (model.Principal, uuid.UUID, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return model.Principal{}, uuid.Nil, false
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid service order id"))
		return model.Principal{}, uuid.Nil, false
	}
	return principal, id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var userErr *service.UserError
	message := err.Error()
	if errors.As(err, &userErr) {
		message = userErr.Message
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(message))
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, calendar.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, errorResponse(message))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, workflow.ErrRecordNotFound), errors.Is(err, view.ErrUnknownView):
		c.JSON(http.StatusNotFound, errorResponse(message))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(message))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, errorResponse(message))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

var rangeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (h *Handler) parseRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := h.parseTime(c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	to, err := h.parseTime(c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	return from, to, nil
}

func (h *Handler) parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("value is required")
	}
	for _, layout := range rangeLayouts {
		if ts, err := time.ParseInLocation(layout, value, h.location); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", value)
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
