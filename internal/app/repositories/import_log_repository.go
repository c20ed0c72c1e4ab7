package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmansoor/campusgate/internal/app/models"
)

// ImportLogRepository handles the append-only import audit trail
type ImportLogRepository struct {
	db *pgxpool.Pool
}

// NewImportLogRepository creates a new import log repository
func NewImportLogRepository(db *pgxpool.Pool) *ImportLogRepository {
	return &ImportLogRepository{
		db: db,
	}
}

// Create appends one audit entry and fills in the generated ID
func (r *ImportLogRepository) Create(ctx context.Context, entry *models.ImportLog) error {
	query := `
		INSERT INTO import_logs (batch_id, import_type, total_records, successful_records, failed_records, error_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.BatchID,
		entry.ImportType,
		entry.TotalRecords,
		entry.SuccessfulRecords,
		entry.FailedRecords,
		entry.ErrorDetails,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating import log: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent audit entries, newest first
func (r *ImportLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.ImportLog, error) {
	query := `
		SELECT id, batch_id, import_type, total_records, successful_records, failed_records, error_details, created_at
		FROM import_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing import logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.ImportLog
	for rows.Next() {
		var entry models.ImportLog
		if err := rows.Scan(
			&entry.ID,
			&entry.BatchID,
			&entry.ImportType,
			&entry.TotalRecords,
			&entry.SuccessfulRecords,
			&entry.FailedRecords,
			&entry.ErrorDetails,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
