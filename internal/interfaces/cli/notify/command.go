// Package notify exposes the dispatch and expiry passes as one-shot commands
// for cron-driven deployments.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nitrodesk/nitrodesk/internal/infrastructure/database"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/nitrodesk/nitrodesk/internal/interfaces/http"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
)

// ActorID is recorded on activity entries written by these commands.
const ActorID = "cli"

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run notification passes once",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "send-expiring",
			Short: "Send expiring-soon reminders to every eligible customer",
			RunE:  runSendExpiring,
		},
		&cobra.Command{
			Use:   "mark-expired",
			Short: "Transition lapsed ACTIVE customers to EXPIRED",
			RunE:  runMarkExpired,
		},
	)

	return cmd
}

func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *httpRouter.Container) (any, error)) error {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), true)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpRouter.NewContainer(ctx, cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	result, err := fn(ctx, container)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runSendExpiring(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *httpRouter.Container) (any, error) {
		svc := c.NotificationService()
		return svc.SendExpiringNotifications(ctx, svc.Now())
	})
}

func runMarkExpired(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *httpRouter.Container) (any, error) {
		svc := c.NotificationService()
		return svc.MarkExpired(ctx, svc.Now(), ActorID)
	})
}
