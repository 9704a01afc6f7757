package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/argus-watch/argus/backend/internal/api/middleware"
	"github.com/argus-watch/argus/backend/internal/events"
	"github.com/argus-watch/argus/backend/internal/services"
)

// EventsHandler serves the merged security-event timeline.
type EventsHandler struct {
	service         *services.EventService
	defaultPageSize int
}

func NewEventsHandler(service *services.EventService, defaultPageSize int) *EventsHandler {
	return &EventsHandler{service: service, defaultPageSize: defaultPageSize}
}

// eventView enriches a SecurityEvent with the derived display strings the
// frontend renders. Pure functions of the event and the current time.
type eventView struct {
	events.SecurityEvent
	RiskLevel string `json:"risk_level"`
	TypeLabel string `json:"type_label"`
	TimeAgo   string `json:"time_ago"`
	Urgency   string `json:"urgency,omitempty"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

func newEventView(ev events.SecurityEvent, now time.Time) eventView {
	view := eventView{
		SecurityEvent: ev,
		RiskLevel:     string(events.RiskLevelOf(ev.RiskScore)),
		TypeLabel:     ev.DetectionType.Label(),
		TimeAgo:       events.TimeAgo(ev.Timestamp, now),
	}
	if ev.Kind == events.KindActiveBlock && ev.ExpiresAt != nil {
		view.Urgency, view.ExpiresIn = events.Urgency(*ev.ExpiresAt, now)
	}
	return view
}

// List returns one filtered, paginated page of the timeline.
func (h *EventsHandler) List(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}

	result := h.service.Query(criteria, page, pageSize)

	now := time.Now()
	views := make([]eventView, 0, len(result.Events))
	for _, ev := range result.Events {
		views = append(views, newEventView(ev, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       views,
		"total_count":  result.TotalCount,
		"total_pages":  result.TotalPages,
		"page":         result.PageIndex,
		"refreshed_at": result.RefreshedAt,
	})
}

func parseCriteria(c *gin.Context) (events.Criteria, error) {
	criteria := events.Criteria{
		DetectionType: c.DefaultQuery("type", events.FilterAll),
		Status:        c.DefaultQuery("status", events.FilterAll),
		RiskLevel:     c.DefaultQuery("risk", events.FilterAll),
	}
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return events.Criteria{}, err
		}
		criteria.Start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return events.Criteria{}, err
		}
		criteria.End = &t
	}
	if err := criteria.Validate(); err != nil {
		return events.Criteria{}, err
	}
	return criteria, nil
}

// Summary returns snapshot-wide aggregates for the dashboard charts.
func (h *EventsHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Summarize())
}

// Refresh triggers a manual snapshot refresh.
func (h *EventsHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), "manual"); err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("manual refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed", "refreshed_at": h.service.RefreshedAt()})
}

// Status reports refresh health: the last swap time plus recent audits.
func (h *EventsHandler) Status(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	audits, err := h.service.ListRefreshAudits(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list refresh audits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"refreshed_at": h.service.RefreshedAt(),
		"audits":       audits,
	})
}

// DetectionTypes lists the taxonomy for the filter dropdown.
func (h *EventsHandler) DetectionTypes(c *gin.Context) {
	out := make([]gin.H, 0, len(events.DetectionTypes))
	for _, dt := range events.DetectionTypes {
		out = append(out, gin.H{"value": string(dt), "label": dt.Label()})
	}
	c.JSON(http.StatusOK, out)
}

// RegisterRoutes registers timeline routes under the protected group.
func (h *EventsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/security/events", h.List)
	rg.GET("/security/events/summary", h.Summary)
	rg.GET("/security/events/types", h.DetectionTypes)
	rg.GET("/security/status", h.Status)
	rg.POST("/security/refresh", h.Refresh)
}
