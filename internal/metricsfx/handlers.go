package metricsfx

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/es-retention/pkg/http/handler"
)

func RegisterHandlers(
	router *mux.Router,
	logger *logrus.Logger,
	repo handler.DeletionRepository,
) {
	router.Handle("/metrics", promhttp.Handler())

	// recent runs endpoint needs the audit database
	if repo != nil {
		router.Handle("/metrics/runs", handler.NewRecentRunsHandler(logger, repo))
	}
}
