package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/cache"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/email"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/template"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/goroutine"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// DispatchConfig bounds a dispatch cycle.
type DispatchConfig struct {
	MaxConcurrency int
	InflightTTL    time.Duration
}

type outcomeKind int

const (
	kindDeferred outcomeKind = iota
	kindSkipped
	kindSent
	kindFailed
)

type outcome struct {
	kind outcomeKind
	err  error
}

// SendExpiringNotificationsUseCase runs one expiring-soon reminder cycle.
type SendExpiringNotificationsUseCase struct {
	settings  SettingsSource
	selector  *Selector
	notifRepo notification.Repository
	deliverer Deliverer
	renderer  MessageRenderer
	locks     cache.InflightLock
	recorder  ActivityRecorder
	reporter  CycleReporter
	metrics   DispatchMetrics
	clock     biztime.Clock
	cfg       DispatchConfig
	logger    logger.Interface
}

func NewSendExpiringNotificationsUseCase(
	settings SettingsSource,
	selector *Selector,
	notifRepo notification.Repository,
	deliverer Deliverer,
	renderer MessageRenderer,
	locks cache.InflightLock,
	recorder ActivityRecorder,
	reporter CycleReporter,
	metrics DispatchMetrics,
	clock biztime.Clock,
	cfg DispatchConfig,
	logger logger.Interface,
) *SendExpiringNotificationsUseCase {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.InflightTTL <= 0 {
		cfg.InflightTTL = 2 * time.Minute
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SendExpiringNotificationsUseCase{
		settings:  settings,
		selector:  selector,
		notifRepo: notifRepo,
		deliverer: deliverer,
		renderer:  renderer,
		locks:     locks,
		recorder:  recorder,
		reporter:  reporter,
		metrics:   metrics,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute reminds every expiring-soon customer that has not yet had a
// successful reminder in the current window. Individual failures are counted,
// never returned. Once ctx is done no new delivery starts; deliveries already
// started finish and are recorded.
func (uc *SendExpiringNotificationsUseCase) Execute(ctx context.Context, now time.Time) (*dto.DispatchResult, error) {
	started := uc.clock.Now()

	s, err := activeSettings(ctx, uc.settings)
	if err != nil {
		uc.metrics.ObserveCycle(cycleResult(err), uc.clock.Now().Sub(started), now)
		return nil, err
	}

	views, err := uc.selector.FindExpiringSoon(ctx, now, s.NotifyBeforeDays)
	if err != nil {
		uc.metrics.ObserveCycle("error", uc.clock.Now().Sub(started), now)
		return nil, err
	}

	cycleID := uuid.NewString()
	log := uc.logger.With("cycle_id", cycleID)
	log.Infow("expiring notification cycle started", "candidates", len(views), "max_concurrency", uc.cfg.MaxConcurrency)

	outcomes := make([]outcome, len(views))
	g := new(errgroup.Group)
	g.SetLimit(uc.cfg.MaxConcurrency)

	for i := range views {
		if ctx.Err() != nil {
			// outcomes[i] stays deferred.
			continue
		}
		g.Go(func() error {
			outcomes[i] = uc.process(ctx, cycleID, s, views[i], log)
			return nil
		})
	}
	_ = g.Wait()

	result := uc.summarise(cycleID, views, outcomes)
	finished := uc.clock.Now()
	uc.metrics.ObserveCycle("ok", finished.Sub(started), now)

	log.Infow("expiring notification cycle finished",
		"total_expiring", result.TotalExpiring,
		"sent", result.SentCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
		"deferred", result.DeferredCount,
	)

	uc.report(ctx, result, started, finished, views, outcomes)
	return result, nil
}

// process handles one customer: claim, dedup, deliver, record.
func (uc *SendExpiringNotificationsUseCase) process(ctx context.Context, cycleID string, s setting.BotSettings, v customer.View, log logger.Interface) outcome {
	customerID := v.Customer.ID()
	nType := string(notification.TypeExpiringSoon)

	if ctx.Err() != nil {
		uc.metrics.IncDelivery(nType, outcomeDeferred)
		return outcome{kind: kindDeferred}
	}

	release, ok, err := uc.locks.TryAcquire(ctx, customerID, uc.cfg.InflightTTL)
	if err != nil || !ok {
		if err != nil {
			log.Warnw("in-flight lock unavailable, deferring", "customer_id", customerID, "error", err)
		} else {
			log.Debugw("customer already being notified, deferring", "customer_id", customerID)
		}
		uc.metrics.IncDelivery(nType, outcomeDeferred)
		return outcome{kind: kindDeferred}
	}
	defer release()

	// Checked under the lock so a concurrent cycle's committed record is visible.
	sent, err := uc.notifRepo.HasSuccessfulSince(ctx, customerID, notification.TypeExpiringSoon, v.WindowStart)
	if err != nil {
		log.Warnw("dedup check failed, deferring", "customer_id", customerID, "error", err)
		uc.metrics.IncDelivery(nType, outcomeDeferred)
		return outcome{kind: kindDeferred}
	}
	if sent {
		uc.metrics.IncDelivery(nType, outcomeSkipped)
		return outcome{kind: kindSkipped}
	}
	if ctx.Err() != nil {
		uc.metrics.IncDelivery(nType, outcomeDeferred)
		return outcome{kind: kindDeferred}
	}

	// From here on the send is started and must complete.
	dctx := context.WithoutCancel(ctx)
	kind := template.KindFor(v.HoursLeft, s.NotifyBeforeHours)
	windowStart := v.WindowStart

	_, err = deliverAndRecord(dctx, deliveryDeps{
		notifRepo: uc.notifRepo,
		deliverer: uc.deliverer,
		renderer:  uc.renderer,
		recorder:  uc.recorder,
		metrics:   uc.metrics,
		clock:     uc.clock,
		logger:    log,
	}, delivery{
		settings:    s,
		view:        v,
		kind:        kind,
		nType:       notification.TypeExpiringSoon,
		cycleID:     cycleID,
		windowStart: &windowStart,
	})
	if err != nil {
		return outcome{kind: kindFailed, err: err}
	}
	return outcome{kind: kindSent}
}

func (uc *SendExpiringNotificationsUseCase) summarise(cycleID string, views []customer.View, outcomes []outcome) *dto.DispatchResult {
	result := &dto.DispatchResult{
		CycleID:       cycleID,
		TotalExpiring: len(views),
		Failures:      []dto.DispatchFailure{},
	}
	for i, o := range outcomes {
		switch o.kind {
		case kindSent:
			result.SentCount++
		case kindSkipped:
			result.SkippedCount++
		case kindFailed:
			result.FailedCount++
			result.Failures = append(result.Failures, dto.DispatchFailure{
				CustomerID: views[i].Customer.ID(),
				DiscordID:  views[i].Customer.DiscordID(),
				Error:      o.err.Error(),
			})
		default:
			result.DeferredCount++
		}
	}
	return result
}

// report mails the cycle summary in the background when something was attempted.
func (uc *SendExpiringNotificationsUseCase) report(ctx context.Context, result *dto.DispatchResult, started, finished time.Time, views []customer.View, outcomes []outcome) {
	if uc.reporter == nil || result.SentCount+result.FailedCount == 0 {
		return
	}

	r := email.CycleReport{
		CycleID:       result.CycleID,
		StartedAt:     started,
		FinishedAt:    finished,
		TotalExpiring: result.TotalExpiring,
		Sent:          result.SentCount,
		Failed:        result.FailedCount,
		Skipped:       result.SkippedCount,
		Deferred:      result.DeferredCount,
	}
	for _, f := range result.Failures {
		r.Failures = append(r.Failures, email.ReportFailure{CustomerID: f.CustomerID, DiscordID: f.DiscordID, Error: f.Error})
	}

	rctx := context.WithoutCancel(ctx)
	goroutine.SafeGo(uc.logger, "cycle-report", func() {
		if err := uc.reporter.SendCycleReport(rctx, r); err != nil {
			uc.logger.Warnw("failed to send cycle report", "cycle_id", r.CycleID, "error", err)
		}
	})
}

type deliveryDeps struct {
	notifRepo notification.Repository
	deliverer Deliverer
	renderer  MessageRenderer
	recorder  ActivityRecorder
	metrics   DispatchMetrics
	clock     biztime.Clock
	logger    logger.Interface
}

type delivery struct {
	settings    setting.BotSettings
	view        customer.View
	kind        template.Kind
	nType       notification.Type
	message     string
	cycleID     string
	windowStart *time.Time
	actorID     string
}

// deliverAndRecord composes and sends one message, then writes the
// notification record and the NOTIFY activity. It returns the delivery error.
func deliverAndRecord(ctx context.Context, deps deliveryDeps, d delivery) (*notification.Record, error) {
	c := d.view.Customer
	start := deps.clock.Now()

	content, err := deps.renderer.Render(d.kind, deps.renderer.Data(d.view, d.message))
	if err == nil {
		err = deps.deliverer.Deliver(ctx, d.settings.BotToken, d.settings.NotificationChannelID, c.DiscordID(), content)
	}
	sentAt := deps.clock.Now()
	deps.metrics.ObserveDelivery(string(d.nType), sentAt.Sub(start))

	rec, recErr := notification.NewRecord(notification.Attempt{
		CustomerID:      c.ID(),
		DiscordID:       c.DiscordID(),
		DiscordUsername: c.DiscordUsername(),
		Type:            d.nType,
		Message:         content,
		SentAt:          sentAt,
		Err:             err,
		CycleID:         d.cycleID,
		WindowStart:     d.windowStart,
	})
	if recErr != nil {
		deps.logger.Errorw("failed to build notification record",
			"customer_id", c.ID(), "type", d.nType, "delivered", err == nil, "error", recErr)
	} else if recErr = deps.notifRepo.Create(ctx, rec); recErr != nil {
		deps.logger.Errorw("failed to store notification record",
			"customer_id", c.ID(), "type", d.nType, "delivered", err == nil, "error", recErr)
	}

	description := fmt.Sprintf("Sent %s notification to %s", humanType(d.nType), c.DisplayName())
	meta := map[string]any{"type": string(d.nType), "success": err == nil}
	if rec != nil {
		meta["notificationId"] = rec.ID()
	}
	if d.cycleID != "" {
		meta["cycleId"] = d.cycleID
	}
	if err != nil {
		description = fmt.Sprintf("Failed to send %s notification to %s: %s", humanType(d.nType), c.DisplayName(), err.Error())
		deps.metrics.IncDelivery(string(d.nType), outcomeFailed)
		deps.logger.Warnw("notification delivery failed", "customer_id", c.ID(), "type", d.nType, "error", err)
	} else {
		deps.metrics.IncDelivery(string(d.nType), outcomeSent)
		deps.logger.Infow("notification delivered", "customer_id", c.ID(), "type", d.nType)
	}

	deps.recorder.Record(ctx, activityApp.Entry{
		Action:      activity.ActionNotify,
		EntityType:  activity.EntityCustomer,
		EntityID:    c.ID(),
		Description: description,
		ActorID:     d.actorID,
		Metadata:    meta,
	})
	return rec, err
}

func humanType(t notification.Type) string {
	switch t {
	case notification.TypeExpiringSoon:
		return "expiring-soon"
	case notification.TypeExpired:
		return "expired"
	case notification.TypeRenewed:
		return "renewal"
	default:
		return "manual"
	}
}
