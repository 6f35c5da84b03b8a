package domainfx

import (
	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/yurykabanov/es-retention/pkg/elastic"
	"github.com/yurykabanov/es-retention/pkg/retention"
)

const (
	ConfigCronSpec = "cron"
)

type ManagerConfig struct {
	CronSpec string
}

func ManagerConfigProvider(v *viper.Viper) *ManagerConfig {
	return &ManagerConfig{
		CronSpec: v.GetString(ConfigCronSpec),
	}
}

func NewCron() *cron.Cron {
	return cron.New()
}

func SweepService(
	logger *logrus.Logger,
	client *elastic.Client,
	recorder retention.SweepRecorder,
) *retention.SweepService {
	return retention.NewSweepService(logger, client, recorder)
}

func SweepManager(
	logger *logrus.Logger,
	rules []retention.Rule,
	service *retention.SweepService,
	cron *cron.Cron,
	config *ManagerConfig,
) *retention.Manager {
	return retention.NewManager(logger, rules, service, cron, config.CronSpec)
}
