package worker

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	notificationApp "github.com/nitrodesk/nitrodesk/internal/application/notification"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/database"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/scheduler"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/nitrodesk/nitrodesk/internal/interfaces/http"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
)

const actorID = "worker"

var (
	env        string
	jobTimeout time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the periodic notification worker",
		Long:  `Mark lapsed subscriptions expired and send expiring-soon reminders on a fixed interval.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().DurationVar(&jobTimeout, "job-timeout", 10*time.Minute, "Upper bound for a single notification cycle")

	return cmd
}

// Jobs adapts the notification service to scheduler jobs. markExpired is nil
// when the expiry pass is disabled.
func Jobs(svc *notificationApp.ServiceDDD, withMarkExpired bool) (markExpired, sendExpiring scheduler.BatchJob) {
	if withMarkExpired {
		markExpired = scheduler.BatchJobFunc(func(ctx context.Context) (int, error) {
			result, err := svc.MarkExpired(ctx, svc.Now(), actorID)
			if err != nil {
				return 0, err
			}
			return result.UpdatedCount, nil
		})
	}
	sendExpiring = scheduler.BatchJobFunc(func(ctx context.Context) (int, error) {
		result, err := svc.SendExpiringNotifications(ctx, svc.Now())
		if err != nil {
			return 0, err
		}
		return result.SentCount, nil
	})
	return markExpired, sendExpiring
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), true)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpRouter.NewContainer(ctx, cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	markExpired, sendExpiring := Jobs(container.NotificationService(), cfg.Notification.WorkerMarkExpired)
	if err := manager.RegisterNotificationJobs(cfg.Notification.WorkerInterval(), jobTimeout, markExpired, sendExpiring); err != nil {
		return fmt.Errorf("failed to register notification jobs: %w", err)
	}

	manager.Start()
	log.Infow("notification worker running", "interval", cfg.Notification.WorkerInterval())

	<-ctx.Done()
	log.Infow("stopping notification worker")
	return manager.Stop()
}
