package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"crane-safety-service/internal/http/middleware"
	"crane-safety-service/internal/model"
	"crane-safety-service/internal/service"
)

type Handler struct {
	events    *service.EventService
	analytics *service.AnalyticsService
	reports   *service.ReportService
	auth      *service.AuthService
	log       zerolog.Logger
}

func NewHandler(events *service.EventService, analytics *service.AnalyticsService, reports *service.ReportService, auth *service.AuthService, log zerolog.Logger) *Handler {
	return &Handler{events: events, analytics: analytics, reports: reports, auth: auth, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware, adminMiddleware, ingestMiddleware gin.HandlerFunc) {
	api := r.Group("/api")

	api.POST("/auth/login", h.login)
	account := api.Group("/auth")
	account.Use(authMiddleware)
	account.GET("/me", h.me)
	account.PATCH("/me", h.updateProfile)

	// Device ingestion is gated by source address, not by a user token.
	api.POST("/events", ingestMiddleware, h.createEvent)

	events := api.Group("/events")
	events.Use(authMiddleware)
	events.GET("", h.listEvents)
	events.GET("/:id", h.getEvent)
	events.PATCH("/:id", adminMiddleware, h.updateEventRemarks)
	events.POST("/:id/review", h.reviewEvent)

	api.GET("/analytics", authMiddleware, h.getAnalytics)
	api.POST("/reports/export", authMiddleware, h.exportReport)
	api.GET("/images/:key", h.getImage)
}

type createEventRequest struct {
	EventID           string   `json:"event_id"`
	EventType         string   `json:"event_type"`
	Timestamp         string   `json:"timestamp"`
	CraneID           string   `json:"crane_id"`
	ZoneType          string   `json:"zone_type"`
	MotionType        string   `json:"motion_type"`
	ShiftID           *int64   `json:"shift_id"`
	Operator          *string  `json:"operator"`
	AIConfidenceScore *float64 `json:"ai_confidence_score"`
	ImageReference    *string  `json:"image_reference"`
	Remarks           *string  `json:"remarks"`
}

func (h *Handler) createEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	event, created, err := h.events.Ingest(c.Request.Context(), service.CreateEventInput{
		EventID:           req.EventID,
		EventType:         req.EventType,
		Timestamp:         req.Timestamp,
		CraneID:           req.CraneID,
		ZoneType:          req.ZoneType,
		MotionType:        req.MotionType,
		ShiftID:           req.ShiftID,
		Operator:          req.Operator,
		AIConfidenceScore: req.AIConfidenceScore,
		ImageReference:    req.ImageReference,
		Remarks:           req.Remarks,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Event already exists", "event": event})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": event})
}

func (h *Handler) listEvents(c *gin.Context) {
	query := c.Request.URL.Query()
	filter := model.ParseEventFilter(query)
	page := model.ParsePageRequest(query)

	events, pagination, err := h.events.List(c.Request.Context(), filter, page)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "pagination": pagination})
}

func (h *Handler) getEvent(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

type updateRemarksRequest struct {
	Remarks *string `json:"remarks"`
}

func (h *Handler) updateEventRemarks(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req updateRemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Remarks == nil {
		c.JSON(http.StatusBadRequest, errorResponse("no fields to update"))
		return
	}

	event, err := h.events.UpdateRemarks(c.Request.Context(), id, *req.Remarks)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

type reviewRequest struct {
	Reviewed *bool `json:"reviewed"`
}

func (h *Handler) reviewEvent(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req reviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
			return
		}
	}

	event, err := h.events.SetReviewed(c.Request.Context(), id, req.Reviewed)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event review updated", "event": event})
}

func (h *Handler) getAnalytics(c *gin.Context) {
	filter := model.ParseEventFilter(c.Request.URL.Query())

	data, err := h.analytics.Get(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

type exportRequest struct {
	Format  string            `json:"format"`
	Filters map[string]string `json:"filters"`
}

func (h *Handler) exportReport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	values := make(url.Values, len(req.Filters))
	for key, value := range req.Filters {
		values.Set(key, value)
	}
	filter := model.ParseEventFilter(values)

	doc, err := h.reports.Export(c.Request.Context(), req.Format, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func (h *Handler) getImage(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, errorResponse("missing image key"))
		return
	}

	data, contentType, err := h.events.GetImage(c.Request.Context(), key)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Username        *string `json:"username"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, token, err := h.auth.UpdateProfile(c.Request.Context(), principal.UserID, service.UpdateProfileInput{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := gin.H{"user": user}
	if token != "" {
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse("invalid event id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
