package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/migrate"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/notify"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/server"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/worker"
)

// @title			Nitrodesk API
// @version		1.0
// @description	Admin API for Discord Nitro subscription tracking and reminders.
// @BasePath		/api
func main() {
	rootCmd := &cobra.Command{
		Use:          "nitrodesk",
		Short:        "Nitrodesk - Discord Nitro subscription admin",
		Long:         `Nitrodesk tracks Discord Nitro resale subscriptions and reminds customers over Discord before they lapse.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		notify.NewCommand(),
		worker.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
