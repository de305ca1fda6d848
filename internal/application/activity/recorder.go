// Package activity appends to and reads the audit log.
package activity

import (
	"context"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/application/activity/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// FailureCounter is told about entries dropped after the retry.
type FailureCounter interface {
	IncWriteFailure(action string)
}

// Entry is what callers hand to Record.
type Entry struct {
	Action      activity.Action
	EntityType  activity.EntityType
	EntityID    string
	Description string
	ActorID     string
	Metadata    map[string]any
}

// Recorder writes audit entries without ever failing its caller.
type Recorder struct {
	repo       activity.Repository
	clock      biztime.Clock
	failures   FailureCounter
	logger     logger.Interface
	retryDelay time.Duration
}

func NewRecorder(repo activity.Repository, clock biztime.Clock, failures FailureCounter, log logger.Interface) *Recorder {
	return &Recorder{
		repo:       repo,
		clock:      clock,
		failures:   failures,
		logger:     log.With("component", "activity.recorder"),
		retryDelay: 100 * time.Millisecond,
	}
}

// Record appends e. The write survives cancellation of ctx; it is tried twice
// and then dropped with a log line and a metric.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	ctx = context.WithoutCancel(ctx)

	entry, err := activity.NewEntry(e.Action, e.EntityType, e.EntityID, e.Description, e.ActorID, e.Metadata, r.clock.Now())
	if err != nil {
		r.logger.Errorw("invalid activity entry", "error", err, "action", e.Action, "entity_type", e.EntityType)
		r.countFailure(e.Action)
		return
	}

	err = r.repo.Append(ctx, entry)
	if err == nil {
		return
	}

	r.logger.Warnw("activity write failed, retrying", "error", err, "action", e.Action, "entity_id", e.EntityID)
	time.Sleep(r.retryDelay)

	if err = r.repo.Append(ctx, entry); err != nil {
		r.logger.Errorw("activity write dropped",
			"error", err,
			"action", e.Action,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"description", e.Description,
		)
		r.countFailure(e.Action)
	}
}

func (r *Recorder) countFailure(action activity.Action) {
	if r.failures != nil {
		r.failures.IncWriteFailure(string(action))
	}
}

// List returns the newest entries first. Limit defaults to 50 and is capped at 500.
func (r *Recorder) List(ctx context.Context, req dto.ListActivitiesRequest) ([]dto.ActivityResponse, error) {
	filter := activity.Filter{
		EntityID: req.EntityID,
		Limit:    clampLimit(req.Limit),
	}
	if req.Action != "" {
		a := activity.Action(req.Action)
		filter.Action = &a
	}
	if req.EntityType != "" {
		et := activity.EntityType(req.EntityType)
		filter.EntityType = &et
	}

	entries, err := r.repo.List(ctx, filter)
	if err != nil {
		r.logger.Errorw("failed to list activities", "error", err)
		return nil, err
	}
	return dto.ToActivityResponses(entries), nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return constants.DefaultHistoryLimit
	case limit > constants.MaxHistoryLimit:
		return constants.MaxHistoryLimit
	default:
		return limit
	}
}
