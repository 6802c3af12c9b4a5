package cmd

import (
	"fmt"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lunarweave/modctl/config"
	"github.com/lunarweave/modctl/internal/database"
	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/settings"
	"github.com/lunarweave/modctl/system"
)

func newDiagnosticsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics",
		Short: "Print information about this modctl instance and its module state to assist in debugging.",
		PreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
			log.SetHandler(cli.Default)
		},
		Run: diagnosticsCmdRun,
	}
}

// diagnosticsCmdRun collects diagnostics about the daemon and its modules:
// the build, relevant parts of the configuration, and the enablement state
// and settings of every registered module.
func diagnosticsCmdRun(*cobra.Command, []string) {
	heading := color.New(color.FgCyan, color.Bold)
	enabledMark := color.GreenString("enabled")
	disabledMark := color.RedString("disabled")

	heading.Println("Build")
	fmt.Println(" ", system.GetSystemInformation().String())

	c := config.Get()
	heading.Println("Configuration")
	fmt.Printf("  config path:  %s\n", c.Path())
	fmt.Printf("  api bind:     %s:%d (ssl: %t)\n", c.Api.Host, c.Api.Port, c.Api.Ssl.Enabled)
	fmt.Printf("  database:     %s\n", c.DatabasePath())
	fmt.Printf("  graphql:      %s (dev URL adapter: %t)\n", c.Site.GraphQLEndpoint, c.Site.DevelopmentURLAdapter)

	if err := database.Initialize(); err != nil {
		log.WithField("error", err).Fatal("failed to open database")
	}

	registry := modules.NewRegistry()
	if err := modules.RegisterDefaults(registry); err != nil {
		log.WithField("error", err).Fatal("failed to register modules")
	}
	store := settings.NewStore(database.Instance())

	heading.Println("Modules")
	for _, d := range registry.List() {
		state := disabledMark
		if store.IsEnabled(d) {
			state = enabledMark
		}
		fmt.Printf("  %-34s %s\n", d.Key, state)
		for _, def := range d.EditableSettings() {
			fmt.Printf("    %-32s %v\n", def.Input, store.Value(d.Key, def))
		}
	}
}
