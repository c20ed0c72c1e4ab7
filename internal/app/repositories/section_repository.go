package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmansoor/campusgate/internal/app/models"
)

// Section error types
var (
	ErrSectionNotFound = errors.New("section not found")
)

// pg error code for undefined_column, returned by the denormalized fallback
// on schemas that only carry the program_id join path.
const undefinedColumnCode = "42703"

// SectionRef is a section row joined with its program code, keyed the way
// import validation matches candidate rows to sections.
type SectionRef struct {
	ID          int64
	ProgramCode string
	YearLevel   string
	SectionName string
	Shift       string
}

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// ListActiveRefs retrieves all active sections with their program codes
func (r *SectionRepository) ListActiveRefs(ctx context.Context) ([]SectionRef, error) {
	query := `
		SELECT sec.id, p.code, sec.year_level, sec.section_name, sec.shift
		FROM sections sec
		JOIN programs p ON sec.program_id = p.id
		WHERE sec.is_active = TRUE
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active sections: %w", err)
	}
	defer rows.Close()

	var refs []SectionRef
	for rows.Next() {
		var ref SectionRef
		if err := rows.Scan(
			&ref.ID,
			&ref.ProgramCode,
			&ref.YearLevel,
			&ref.SectionName,
			&ref.Shift,
		); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// ListAvailable retrieves the active sections of a program for a given year
// level and shift, ordered by name
func (r *SectionRepository) ListAvailable(ctx context.Context, programID int64, yearLevel, shift string) ([]*models.Section, error) {
	query := `
		SELECT id, program_id, year_level, shift, section_name, capacity, current_students, is_active
		FROM sections
		WHERE program_id = $1 AND year_level = $2 AND shift = $3 AND is_active = TRUE
		ORDER BY section_name
	`

	rows, err := r.db.Query(ctx, query, programID, yearLevel, shift)
	if err != nil {
		return nil, fmt.Errorf("error listing available sections: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// ListByProgramID retrieves all active sections of a program
func (r *SectionRepository) ListByProgramID(ctx context.Context, programID int64) ([]*models.Section, error) {
	query := `
		SELECT id, program_id, year_level, shift, section_name, capacity, current_students, is_active
		FROM sections
		WHERE program_id = $1 AND is_active = TRUE
		ORDER BY year_level, shift, section_name
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// FindSection resolves the composite key (program code, year level, section
// name, shift) to a section ID. It first joins through programs; if that
// yields nothing it retries against a denormalized program column on
// sections, tolerating deployments that lack the join path. A nil error with
// id 0 is never returned: no match is ErrSectionNotFound.
func (r *SectionRepository) FindSection(ctx context.Context, programCode, yearLevel, sectionName, shift string) (int64, error) {
	joinQuery := `
		SELECT sec.id
		FROM sections sec
		JOIN programs p ON sec.program_id = p.id
		WHERE p.code = $1 AND sec.year_level = $2 AND sec.section_name = $3 AND sec.shift = $4
		  AND sec.is_active = TRUE
	`

	var id int64
	err := r.db.QueryRow(ctx, joinQuery, programCode, yearLevel, sectionName, shift).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("error resolving section: %w", err)
	}

	fallbackQuery := `
		SELECT id
		FROM sections
		WHERE program = $1 AND year_level = $2 AND section_name = $3 AND shift = $4
		  AND is_active = TRUE
	`

	err = r.db.QueryRow(ctx, fallbackQuery, programCode, yearLevel, sectionName, shift).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrSectionNotFound
		}
		// Schemas without the denormalized column reject the fallback query;
		// that is a miss, not a lookup failure.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedColumnCode {
			return 0, ErrSectionNotFound
		}
		return 0, fmt.Errorf("error resolving section via fallback: %w", err)
	}

	return id, nil
}

func scanSections(rows pgx.Rows) ([]*models.Section, error) {
	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(
			&section.ID,
			&section.ProgramID,
			&section.YearLevel,
			&section.Shift,
			&section.SectionName,
			&section.Capacity,
			&section.CurrentStudents,
			&section.IsActive,
		); err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}
