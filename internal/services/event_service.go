package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/argus-watch/argus/backend/internal/events"
	"github.com/argus-watch/argus/backend/internal/logger"
	"github.com/argus-watch/argus/backend/internal/metrics"
	"github.com/argus-watch/argus/backend/internal/models"
	"github.com/argus-watch/argus/backend/internal/util"
)

// BlockSource is the slice of the Shield client the event service needs.
// Tests substitute a stub.
type BlockSource interface {
	GetActiveBlocks(ctx context.Context) ([]events.ActiveBlockRecord, error)
	GetDetections(ctx context.Context, limit int) ([]events.DetectionRecord, error)
}

// QueryResult is one page of the filtered timeline plus pager state.
type QueryResult struct {
	Events      []events.SecurityEvent `json:"events"`
	TotalCount  int                    `json:"total_count"`
	TotalPages  int                    `json:"total_pages"`
	PageIndex   int                    `json:"page"`
	RefreshedAt time.Time              `json:"refreshed_at"`
}

// Summary aggregates the current snapshot for the dashboard charts.
type Summary struct {
	TotalEvents  int            `json:"total_events"`
	ActiveBlocks int            `json:"active_blocks"`
	Detections   int            `json:"detections"`
	ByRiskLevel  map[string]int `json:"by_risk_level"`
	ByType       map[string]int `json:"by_type"`
	RefreshedAt  time.Time      `json:"refreshed_at"`
}

// EventService owns the merged event snapshot. Refresh fetches both source
// collections, runs the correlation pipeline and swaps the snapshot
// atomically; a refresh in flight never mutates the published slice, so
// readers always see a complete, consistent timeline.
type EventService struct {
	db             *gorm.DB
	source         BlockSource
	notifications  *NotificationService
	detectionLimit int

	mu           sync.RWMutex
	snapshot     []events.SecurityEvent
	refreshedAt  time.Time
	lastCriteria events.Criteria
	seenCritical map[string]struct{}
}

func NewEventService(db *gorm.DB, source BlockSource, ns *NotificationService, detectionLimit int) *EventService {
	return &EventService{
		db:             db,
		source:         source,
		notifications:  ns,
		detectionLimit: detectionLimit,
		seenCritical:   make(map[string]struct{}),
	}
}

// Refresh fetches a fresh snapshot pair from Shield and publishes the
// merged result. Last completed refresh wins. The outcome is persisted as
// a RefreshAudit row either way.
func (s *EventService) Refresh(ctx context.Context, trigger string) error {
	start := time.Now()

	blocks, err := s.source.GetActiveBlocks(ctx)
	if err != nil {
		s.recordRefresh(trigger, start, 0, 0, 0, err)
		return fmt.Errorf("refresh blocks: %w", err)
	}
	detections, err := s.source.GetDetections(ctx, s.detectionLimit)
	if err != nil {
		s.recordRefresh(trigger, start, len(blocks), 0, 0, err)
		return fmt.Errorf("refresh detections: %w", err)
	}

	merged := events.Merge(blocks, detections)

	s.mu.Lock()
	s.snapshot = merged
	s.refreshedAt = time.Now()
	newCritical := s.collectNewCritical(merged)
	s.mu.Unlock()

	s.recordRefresh(trigger, start, len(blocks), len(detections), len(merged), nil)
	s.publishGauges(merged)
	s.notifyCritical(newCritical)

	logger.WithFields(map[string]interface{}{
		"trigger":    trigger,
		"blocks":     len(blocks),
		"detections": len(detections),
		"events":     len(merged),
	}).Debug("snapshot refreshed")
	return nil
}

// collectNewCritical must be called with the write lock held.
func (s *EventService) collectNewCritical(merged []events.SecurityEvent) []events.SecurityEvent {
	var fresh []events.SecurityEvent
	for _, ev := range merged {
		if events.RiskLevelOf(ev.RiskScore) != events.RiskCritical {
			continue
		}
		if _, ok := s.seenCritical[ev.ID]; !ok {
			s.seenCritical[ev.ID] = struct{}{}
			fresh = append(fresh, ev)
		}
	}
	return fresh
}

func (s *EventService) notifyCritical(fresh []events.SecurityEvent) {
	if s.notifications == nil {
		return
	}
	for _, ev := range fresh {
		title := fmt.Sprintf("Critical %s: %s", ev.DetectionType.Label(), ev.Identifier)
		message := fmt.Sprintf("Risk score %d. %s", ev.RiskScore, util.SanitizeForLog(ev.Reason))
		if _, err := s.notifications.Create(models.NotificationTypeCritical, title, message); err != nil {
			logger.Log().WithError(err).Error("Failed to store critical notification")
		}
		s.notifications.SendExternal(NotifyClassCritical, title, message)
	}
}

func (s *EventService) publishGauges(merged []events.SecurityEvent) {
	var blocks, detections, critical int
	for _, ev := range merged {
		switch ev.Kind {
		case events.KindActiveBlock:
			blocks++
		case events.KindDetection:
			detections++
		}
		if events.RiskLevelOf(ev.RiskScore) == events.RiskCritical {
			critical++
		}
	}
	metrics.SetSnapshotGauges(blocks, detections, critical)
}

func (s *EventService) recordRefresh(trigger string, start time.Time, blocks, detections, eventCount int, refreshErr error) {
	duration := time.Since(start)
	metrics.ObserveRefresh(refreshErr == nil, duration.Seconds())

	audit := &models.RefreshAudit{
		Trigger:        trigger,
		Success:        refreshErr == nil,
		BlockCount:     blocks,
		DetectionCount: detections,
		EventCount:     eventCount,
		DurationMs:     duration.Milliseconds(),
	}
	if refreshErr != nil {
		audit.Error = refreshErr.Error()
	}
	if s.db != nil {
		if err := s.db.Create(audit).Error; err != nil {
			logger.Log().WithError(err).Error("Failed to record refresh audit")
		}
	}
}

// Query filters and pages the current snapshot. Changing the criteria
// between calls resets the page to 0 so a stale out-of-range page is
// never served; within unchanged criteria the page index is clamped.
func (s *EventService) Query(c events.Criteria, pageIndex, pageSize int) QueryResult {
	s.mu.Lock()
	if !c.Equal(s.lastCriteria) {
		s.lastCriteria = c
		pageIndex = 0
	}
	snapshot := s.snapshot
	refreshedAt := s.refreshedAt
	s.mu.Unlock()

	filtered := events.Filter(snapshot, c)
	page, totalPages := events.Paginate(filtered, pageIndex, pageSize)
	return QueryResult{
		Events:      page,
		TotalCount:  len(filtered),
		TotalPages:  totalPages,
		PageIndex:   events.ClampPage(pageIndex, len(filtered), pageSize),
		RefreshedAt: refreshedAt,
	}
}

// Summarize aggregates the whole snapshot, ignoring filters.
func (s *EventService) Summarize() Summary {
	s.mu.RLock()
	snapshot := s.snapshot
	refreshedAt := s.refreshedAt
	s.mu.RUnlock()

	summary := Summary{
		ByRiskLevel: make(map[string]int),
		ByType:      make(map[string]int),
		RefreshedAt: refreshedAt,
	}
	for _, ev := range snapshot {
		summary.TotalEvents++
		switch ev.Kind {
		case events.KindActiveBlock:
			summary.ActiveBlocks++
		case events.KindDetection:
			summary.Detections++
		}
		summary.ByRiskLevel[string(events.RiskLevelOf(ev.RiskScore))]++
		summary.ByType[string(ev.DetectionType)]++
	}
	return summary
}

// RefreshedAt returns when the snapshot was last swapped.
func (s *EventService) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// ListRefreshAudits returns recent refresh outcomes, newest first.
func (s *EventService) ListRefreshAudits(limit int) ([]models.RefreshAudit, error) {
	var audits []models.RefreshAudit
	q := s.db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}
