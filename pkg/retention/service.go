package retention

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/es-retention/internal/metrics"
	"github.com/yurykabanov/es-retention/pkg/appcontext"
	"github.com/yurykabanov/es-retention/pkg/elastic"
)

type IndexClient interface {
	ListIndices(ctx context.Context, prefix string) ([]string, error)
	DeleteIndex(ctx context.Context, name string) error
}

// Candidate is an index that matched the rule's pattern and exceeded
// its age threshold.
type Candidate struct {
	Index     string
	AgeMonths int
}

type Report struct {
	Rule     string
	RunId    string
	Listed   int
	Eligible int
	Deleted  int
	Failed   int
	DryRun   bool
}

// SweepService performs a single retention pass: list indices, match
// dates in their names, pick those older than the threshold and either
// report them (dry-run) or delete them one by one.
type SweepService struct {
	logger logrus.FieldLogger

	client   IndexClient
	recorder SweepRecorder

	now func() time.Time
}

func NewSweepService(
	logger logrus.FieldLogger,
	client IndexClient,
	recorder SweepRecorder,
) *SweepService {
	return &SweepService{
		logger: logger,

		client:   client,
		recorder: recorder,

		now: time.Now,
	}
}

// Candidates lists the store and returns the indices eligible for
// deletion under the given rule, oldest first. It is a pure function of
// the current date and the index set: running it twice yields the same
// result.
func (s *SweepService) Candidates(ctx context.Context, rule Rule) ([]Candidate, int, error) {
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	matcher, err := NewMatcher(rule.IndexPrefix, rule.Pattern)
	if err != nil {
		return nil, 0, err
	}

	names, err := s.client.ListIndices(ctx, rule.IndexPrefix)
	if err != nil {
		return nil, 0, errors.Wrap(err, "unable to list indices")
	}

	logger.WithField("total", len(names)).Info("Fetched index names")

	// normalize the separator so YYYY.MM and YYYY-MM sort together
	sort.Slice(names, func(i, j int) bool {
		return strings.ReplaceAll(names[i], ".", "-") < strings.ReplaceAll(names[j], ".", "-")
	})

	now := s.now().UTC()

	var candidates []Candidate
	for _, name := range names {
		date, ok := matcher.Extract(name)
		if !ok {
			logger.WithField("index", name).Debug("Index name did not match pattern, skipping")
			continue
		}

		age := AgeInMonths(date, now)
		logger.WithFields(logrus.Fields{"index": name, "age_months": age}).Debug("Evaluated index age")

		if rule.ShouldDelete(age) {
			candidates = append(candidates, Candidate{Index: name, AgeMonths: age})
		}
	}

	// oldest first, name as tie-breaker for deterministic output
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AgeMonths != candidates[j].AgeMonths {
			return candidates[i].AgeMonths > candidates[j].AgeMonths
		}
		return candidates[i].Index < candidates[j].Index
	})

	return candidates, len(names), nil
}

// Sweep runs one full pass of the rule. A listing failure is fatal and
// returned; a failure to delete an individual index is logged and the
// sweep continues with the next one.
func (s *SweepService) Sweep(ctx context.Context, rule Rule) (Report, error) {
	runId := newRunId()

	ctx = appcontext.WithRunId(appcontext.WithRuleName(ctx, rule.Name), runId)
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	startedAt := time.Now()
	defer func() {
		metrics.SweepDuration.WithLabelValues(rule.Name).Observe(time.Since(startedAt).Seconds())
	}()

	report := Report{Rule: rule.Name, RunId: runId, DryRun: rule.DryRun()}

	candidates, listed, err := s.Candidates(ctx, rule)
	if err != nil {
		return report, err
	}

	report.Listed = listed
	report.Eligible = len(candidates)

	metrics.IndicesListedTotal.WithLabelValues(rule.Name).Add(float64(listed))
	metrics.IndicesEligibleTotal.WithLabelValues(rule.Name).Add(float64(len(candidates)))

	if len(candidates) == 0 {
		logger.Info("Nothing to delete (0 indices match threshold)")
		return report, nil
	}

	if rule.DryRun() {
		logger.WithField("total", len(candidates)).Info("Dryrun: would delete indices (oldest first)")

		for _, candidate := range candidates {
			s.reportCandidate(ctx, rule, candidate)
		}

		return report, nil
	}

	logger.WithField("total", len(candidates)).Info("Deleting indices (oldest first)")

	for _, candidate := range candidates {
		if s.deleteCandidate(ctx, rule, candidate) {
			report.Deleted++
		} else {
			report.Failed++
		}
	}

	return report, nil
}

func (s *SweepService) reportCandidate(ctx context.Context, rule Rule, candidate Candidate) {
	ctx = appcontext.WithIndexName(ctx, candidate.Index)
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	logger.WithField("age_months", candidate.AgeMonths).Info("Dryrun: would delete index")

	s.record(ctx, rule, candidate, OutcomeDryRun)
}

func (s *SweepService) deleteCandidate(ctx context.Context, rule Rule, candidate Candidate) bool {
	ctx = appcontext.WithIndexName(ctx, candidate.Index)
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	err := s.client.DeleteIndex(ctx, candidate.Index)

	switch {
	case err == nil:
		logger.WithField("age_months", candidate.AgeMonths).Info("Deleted index")

		metrics.IndicesDeletedTotal.WithLabelValues(rule.Name).Inc()
		s.record(ctx, rule, candidate, OutcomeDeleted)

		return true

	case elastic.IsNotFound(err):
		// somebody else removed it first, which is fine
		logger.Info("Index no longer exists, treating as deleted")

		metrics.IndicesDeletedTotal.WithLabelValues(rule.Name).Inc()
		s.record(ctx, rule, candidate, OutcomeNotFound)

		return true

	default:
		logger.WithError(err).Error("Unable to delete index")

		metrics.IndexDeleteFailuresTotal.WithLabelValues(rule.Name).Inc()
		s.record(ctx, rule, candidate, OutcomeFailed)

		return false
	}
}

func (s *SweepService) record(ctx context.Context, rule Rule, candidate Candidate, outcome string) {
	deletion := Deletion{
		RunId:     appcontext.RunIdFromContext(ctx),
		Rule:      rule.Name,
		IndexName: candidate.Index,
		AgeMonths: candidate.AgeMonths,
		DryRun:    rule.DryRun(),
		Outcome:   outcome,
		CreatedAt: time.Now(),
	}

	if _, err := s.recorder.Record(ctx, deletion); err != nil {
		appcontext.LoggerFromContext(s.logger, ctx).WithError(err).Warn("Unable to record deletion in audit log")
	}
}

func newRunId() string {
	return runIdFrom(rand.Reader)
}

func runIdFrom(r io.Reader) string {
	var buf = make([]byte, 8)

	// audit rows must stay attributable to a run even when the random
	// source fails, so fall back to a timestamp
	if _, err := io.ReadFull(r, buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}

	return fmt.Sprintf("%02x", buf)
}
