package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/es-retention/pkg/appcontext"
	"github.com/yurykabanov/es-retention/pkg/retention"
)

const recentDeletionsLimit = 100

type DeletionRepository interface {
	FindRecent(context.Context, int) ([]retention.Deletion, error)
}

// RecentRunsHandler serves the most recent audit records so an operator
// can see what the scheduled sweeps have been deleting.
type RecentRunsHandler struct {
	logger logrus.FieldLogger
	repo   DeletionRepository
}

func NewRecentRunsHandler(logger logrus.FieldLogger, repo DeletionRepository) *RecentRunsHandler {
	return &RecentRunsHandler{
		logger: logger,
		repo:   repo,
	}
}

type deletionResponse struct {
	RunId     string `json:"run_id"`
	Rule      string `json:"rule"`
	Index     string `json:"index"`
	AgeMonths int    `json:"age_months"`
	DryRun    bool   `json:"dry_run"`
	Outcome   string `json:"outcome"`
	CreatedAt int64  `json:"created_at_mtime"`
}

func (h *RecentRunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	logger := appcontext.LoggerFromContext(h.logger, ctx)

	dd, err := h.repo.FindRecent(ctx, recentDeletionsLimit)
	if err != nil {
		logger.WithError(err).Error("Unable to query recent deletions")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var result []deletionResponse

	for _, d := range dd {
		result = append(result, deletionResponse{
			RunId:     d.RunId,
			Rule:      d.Rule,
			Index:     d.IndexName,
			AgeMonths: d.AgeMonths,
			DryRun:    d.DryRun,
			Outcome:   d.Outcome,
			CreatedAt: d.CreatedAt.UnixNano() / 1e6,
		})
	}

	body, err := json.Marshal(result)
	if err != nil {
		logger.WithError(err).Error("Unable to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(body); err != nil {
		logger.WithError(err).Error("Unable to write response")
	}
}
