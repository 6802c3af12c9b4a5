package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/lunarweave/modctl/config"
	"github.com/lunarweave/modctl/graphql"
	"github.com/lunarweave/modctl/internal/database"
	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/rewrite"
	"github.com/lunarweave/modctl/router"
	"github.com/lunarweave/modctl/settings"
	"github.com/lunarweave/modctl/system"
)

var (
	configPath = config.DefaultLocation
	debug      = false
)

var rootCommand = &cobra.Command{
	Use:   "modctl",
	Short: "Runs the module administration API for the host application.",
	PreRun: func(cmd *cobra.Command, args []string) {
		initConfig()
		initLogging()
		if debug {
			config.SetDebugViaFlag(true)
		}
	},
	Run: rootCmdRun,
}

func init() {
	rootCommand.PersistentFlags().StringVar(&configPath, "config", config.DefaultLocation, "set the location for the configuration file")
	rootCommand.PersistentFlags().BoolVar(&debug, "debug", false, "pass in order to run modctl in debug mode")

	rootCommand.AddCommand(newDiagnosticsCommand())
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads the configuration from the disk, falling back to defaults
// when no configuration file exists yet.
func initConfig() {
	if err := config.FromFile(configPath); err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.WithField("error", err).Fatal("failed to read configuration file")
		}
		c, cerr := config.NewAtPath(configPath)
		if cerr != nil {
			log.WithField("error", cerr).Fatal("failed to build default configuration")
		}
		config.Set(c)
		log.WithField("path", configPath).Warn("no configuration file found, running with defaults")
	}
}

func initLogging() {
	log.SetHandler(cli.Default)
	if debug || config.Get().Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func rootCmdRun(*cobra.Command, []string) {
	log.Info(system.GetSystemInformation().String())

	if err := config.EnsureDirectories(config.Get()); err != nil {
		log.WithField("error", err).Fatal("failed to create storage directories")
	}
	if err := database.Initialize(); err != nil {
		log.WithField("error", err).Fatal("failed to initialize database")
	}

	registry := modules.NewRegistry()
	if err := modules.RegisterDefaults(registry); err != nil {
		log.WithField("error", err).Fatal("failed to register modules")
	}

	store := settings.NewStore(database.Instance())
	normalizer := settings.NewNormalizer()
	scheduler := rewrite.NewScheduler()

	engine := graphql.NewEngine()
	if site := config.Get().Site; site.DevelopmentURLAdapter {
		state := graphql.NewRequestState(site.GraphQLEndpoint)
		graphql.NewDevURLAdapter(state).Attach(engine)
	}
	// Build the initial routing table from the persisted state.
	engine.RebuildRoutes(registry, store)

	r := router.Configure(registry, store, normalizer, scheduler, engine)

	c := config.Get()
	addr := fmt.Sprintf("%s:%d", c.Api.Host, c.Api.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.WithFields(log.Fields{
			"host": c.Api.Host,
			"port": c.Api.Port,
			"ssl":  c.Api.Ssl.Enabled,
		}).Info("configuring webserver")

		var err error
		if c.Api.Ssl.Enabled {
			err = srv.ListenAndServeTLS(c.Api.Ssl.CertificateFile, c.Api.Ssl.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("error", err).Fatal("failed to start webserver")
		}
	}()

	// Block until a signal arrives, then give in-flight requests a grace
	// period to complete.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down webserver")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("error", err).Error("webserver did not shut down cleanly")
	}
}
