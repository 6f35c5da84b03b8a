package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/yurykabanov/es-retention/internal/configfx"
	"github.com/yurykabanov/es-retention/internal/domainfx"
	"github.com/yurykabanov/es-retention/internal/elasticfx"
	"github.com/yurykabanov/es-retention/internal/loggerfx"
	"github.com/yurykabanov/es-retention/internal/metricsfx"
	"github.com/yurykabanov/es-retention/internal/sqlfx"
	"github.com/yurykabanov/es-retention/pkg/retention"
)

// overridden at build time via -ldflags
var version = "dev"

func main() {
	logger := loggerfx.Logger()

	flags := configfx.PFlags()

	if ok, err := flags.GetBool("version"); err == nil && ok {
		fmt.Printf("es-retention %s\n", version)
		return
	}

	var (
		manager       *retention.Manager
		managerConfig *domainfx.ManagerConfig
	)

	app := fx.New(
		fx.StartTimeout(15*time.Second),
		fx.StopTimeout(15*time.Second),

		fx.Logger(logger),

		fx.Provide(func() *pflag.FlagSet { return flags }),

		loggerfx.Module,
		configfx.Module,
		sqlfx.Module,
		elasticfx.Module,
		metricsfx.Module,
		domainfx.Module,

		fx.Populate(&manager, &managerConfig),
	)

	if err := app.Err(); err != nil {
		logger.WithError(err).Fatal("Unable to initialize application")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	err := app.Start(startCtx)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Unable to start application")
	}

	if managerConfig.CronSpec == "" {
		err := manager.RunOnce(context.Background())

		stop(app, logger)

		if err != nil {
			logger.WithError(err).Error("Sweep failed")
			os.Exit(1)
		}

		return
	}

	if err := manager.RunScheduled(); err != nil {
		stop(app, logger)
		logger.WithError(err).Fatal("Invalid cron spec")
	}

	<-app.Done()

	manager.StopScheduled()
	stop(app, logger)
}

func stop(app *fx.App, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.Stop(ctx); err != nil {
		logger.WithError(err).Error("Unable to stop application")
	}
}
