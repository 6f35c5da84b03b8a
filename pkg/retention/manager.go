package retention

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/es-retention/pkg/appcontext"
)

type sweepService interface {
	Sweep(context.Context, Rule) (Report, error)
}

type cronRunner interface {
	AddFunc(spec string, cmd func()) error
	Start()
	Stop()
}

// Manager runs the configured rules, either once or on a cron schedule.
// Rules are swept strictly sequentially so the store is never hit by
// parallel deletions and output ordering stays deterministic.
type Manager struct {
	logger logrus.FieldLogger

	rules   []Rule
	service sweepService

	cron     cronRunner
	cronSpec string

	// capacity 1: holds a token while a scheduled pass is running
	running chan struct{}
}

func NewManager(
	logger logrus.FieldLogger,
	rules []Rule,
	service sweepService,
	cron cronRunner,
	cronSpec string,
) *Manager {
	return &Manager{
		logger: logger,

		rules:   rules,
		service: service,

		cron:     cron,
		cronSpec: cronSpec,

		running: make(chan struct{}, 1),
	}
}

// RunOnce sweeps every rule once. The first listing failure aborts the
// run: without a known index set there is nothing left to decide.
func (m *Manager) RunOnce(ctx context.Context) error {
	for _, rule := range m.rules {
		report, err := m.service.Sweep(ctx, rule)
		if err != nil {
			return err
		}

		logger := appcontext.LoggerFromContext(m.logger, appcontext.WithRuleName(ctx, rule.Name))
		logger.WithFields(logrus.Fields{
			"run_id":   report.RunId,
			"listed":   report.Listed,
			"eligible": report.Eligible,
			"deleted":  report.Deleted,
			"failed":   report.Failed,
			"dryrun":   report.DryRun,
		}).Info("Sweep finished")
	}

	return nil
}

// RunScheduled registers the sweep with the cron runner and starts it.
// Failures of a scheduled sweep are logged, the schedule keeps going.
// The cron runner fires every tick in its own goroutine, so a tick that
// arrives while a pass is still running is skipped: passes never overlap.
func (m *Manager) RunScheduled() error {
	err := m.cron.AddFunc(m.cronSpec, func() {
		select {
		case m.running <- struct{}{}:
		default:
			m.logger.Warn("Previous sweep is still running, skipping this tick")
			return
		}
		defer func() { <-m.running }()

		if err := m.RunOnce(context.Background()); err != nil {
			m.logger.WithError(err).Error("Scheduled sweep failed")
		}
	})
	if err != nil {
		return err
	}

	m.logger.WithField("spec", m.cronSpec).Info("Starting scheduled sweeps")
	m.cron.Start()

	return nil
}

func (m *Manager) StopScheduled() {
	m.cron.Stop()
}
