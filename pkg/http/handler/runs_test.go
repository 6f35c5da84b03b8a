package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yurykabanov/es-retention/pkg/retention"
)

// region deletionRepositoryMock
type deletionRepositoryMock struct {
	mock.Mock
}

func (m *deletionRepositoryMock) FindRecent(ctx context.Context, limit int) ([]retention.Deletion, error) {
	args := m.Called(ctx, limit)

	if r := args.Get(0); r != nil {
		return r.([]retention.Deletion), args.Error(1)
	}

	return nil, args.Error(1)
}

// endregion

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRecentRunsHandler_ServesRecentDeletions(t *testing.T) {
	repo := &deletionRepositoryMock{}
	repo.On("FindRecent", mock.Anything, recentDeletionsLimit).Return([]retention.Deletion{
		{
			RunId:     "aabbccdd",
			Rule:      "default",
			IndexName: "zis-audit-2020-01",
			AgeMonths: 65,
			Outcome:   retention.OutcomeDeleted,
			CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		},
	}, nil)

	h := NewRecentRunsHandler(testLogger(), repo)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/runs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result []deletionResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result, 1)
	assert.Equal(t, "zis-audit-2020-01", result[0].Index)
	assert.Equal(t, retention.OutcomeDeleted, result[0].Outcome)
}

func TestRecentRunsHandler_RepositoryFailure(t *testing.T) {
	repo := &deletionRepositoryMock{}
	repo.On("FindRecent", mock.Anything, recentDeletionsLimit).
		Return(nil, errors.New("database is locked"))

	h := NewRecentRunsHandler(testLogger(), repo)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/runs", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
