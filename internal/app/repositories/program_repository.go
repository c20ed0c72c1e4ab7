package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmansoor/campusgate/internal/app/models"
)

// Program error types
var (
	ErrProgramNotFound = errors.New("program not found")
)

// ProgramRepository handles database operations for programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

// ListActive retrieves all active programs ordered by code
func (r *ProgramRepository) ListActive(ctx context.Context) ([]*models.Program, error) {
	query := `
		SELECT id, code, name, is_active
		FROM programs
		WHERE is_active = TRUE
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID,
			&program.Code,
			&program.Name,
			&program.IsActive,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// GetActiveByCode retrieves an active program by its code
func (r *ProgramRepository) GetActiveByCode(ctx context.Context, code string) (*models.Program, error) {
	query := `
		SELECT id, code, name, is_active
		FROM programs
		WHERE code = $1 AND is_active = TRUE
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, code).Scan(
		&program.ID,
		&program.Code,
		&program.Name,
		&program.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, code, name, is_active
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Code,
		&program.Name,
		&program.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}
