package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/yurykabanov/es-retention/pkg/retention"
)

const (
	deletionInsertQuery = `
		INSERT INTO deletions (
			run_id, rule, index_name,
			age_months, dry_run, outcome, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	deletionSelectRecent = `
		SELECT
			id,
			run_id, rule, index_name,
			age_months, dry_run, outcome, created_at
		FROM deletions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
)

// DeletionRepository persists the audit trail of sweep outcomes.
type DeletionRepository struct {
	db *sqlx.DB
}

func NewDeletionRepository(db *sqlx.DB) *DeletionRepository {
	return &DeletionRepository{
		db: db,
	}
}

func (r *DeletionRepository) Record(ctx context.Context, deletion retention.Deletion) (retention.Deletion, error) {
	stmt, err := r.db.PrepareContext(ctx, deletionInsertQuery)
	if err != nil {
		return deletion, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(
		ctx,
		deletion.RunId, deletion.Rule, deletion.IndexName,
		deletion.AgeMonths, deletion.DryRun, deletion.Outcome, deletion.CreatedAt,
	)
	if err != nil {
		return deletion, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return deletion, err
	}

	deletion.Id = id

	return deletion, nil
}

func (r *DeletionRepository) FindRecent(ctx context.Context, limit int) ([]retention.Deletion, error) {
	var deletions []retention.Deletion

	err := r.db.SelectContext(ctx, &deletions, deletionSelectRecent, limit)
	if err != nil {
		return nil, err
	}

	return deletions, nil
}
