package sqlfx

import (
	"github.com/jmoiron/sqlx"

	"github.com/yurykabanov/es-retention/pkg/http/handler"
	"github.com/yurykabanov/es-retention/pkg/retention"
	"github.com/yurykabanov/es-retention/pkg/storage"
)

func DeletionsRepository(db *sqlx.DB) (
	retention.SweepRecorder,
	handler.DeletionRepository,
) {
	if db == nil {
		return retention.NopRecorder{}, nil
	}

	repo := storage.NewDeletionRepository(db)

	return repo, repo
}
