package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
)

const studentColumns = `
	id, student_id, roll_number, name, email, phone, user_id, program, shift,
	year_level, section, section_id, admission_year, roll_prefix, username, created_at
`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// ExistsByStudentID checks if a student with the given roll number exists.
// Uniqueness is keyed on student_id alone; roll_number always carries the
// same value and has no constraint of its own.
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`,
		studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// ExistsByEmail checks if a student with the given email exists
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// InsertTx inserts a student row inside the caller's transaction and fills
// in the generated ID. The import pipeline calls this once per accepted row;
// unique-violation errors are the caller's signal of a concurrent duplicate.
func (r *StudentRepository) InsertTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	query := `
		INSERT INTO students (
			student_id, roll_number, name, email, phone, user_id, program, shift,
			year_level, section, section_id, admission_year, roll_prefix, username, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		student.StudentID,
		student.RollNumber,
		student.Name,
		student.Email,
		student.Phone,
		student.UserID,
		student.Program,
		student.Shift,
		student.YearLevel,
		student.Section,
		student.SectionID,
		student.AdmissionYear,
		student.RollPrefix,
		student.Username,
	).Scan(&student.ID, &student.CreatedAt)

	if err != nil {
		return err
	}

	return nil
}

// List retrieves students matching the filter, ordered by roll number, with
// the total match count for pagination
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	addCondition := func(clause, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	addCondition("program = $%d", filter.Program)
	addCondition("shift = $%d", filter.Shift)
	addCondition("year_level = $%d", filter.Year)
	addCondition("section = $%d", filter.Section)

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(student_id ILIKE $%d OR name ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM students WHERE ` + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM students WHERE %s ORDER BY student_id LIMIT $%d OFFSET $%d`,
		studentColumns, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.StudentID,
			&student.RollNumber,
			&student.Name,
			&student.Email,
			&student.Phone,
			&student.UserID,
			&student.Program,
			&student.Shift,
			&student.YearLevel,
			&student.Section,
			&student.SectionID,
			&student.AdmissionYear,
			&student.RollPrefix,
			&student.Username,
			&student.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}
