package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/repositories"
	"github.com/hmansoor/campusgate/internal/db"
	"github.com/hmansoor/campusgate/internal/pkg/apperrors"
	"github.com/hmansoor/campusgate/internal/pkg/auth"
	"github.com/hmansoor/campusgate/internal/pkg/dberrors"
	"github.com/hmansoor/campusgate/internal/pkg/rollnumber"
	"github.com/hmansoor/campusgate/internal/pkg/validation"
)

// Row numbers in import errors are 1-based; row 0 flags batch-wide failures.
const batchWideErrorRow = 0

// importHistoryLimit caps the audit entries returned by the history endpoint.
const importHistoryLimit = 50

// Narrow views of the repositories the import pipeline reads and writes.
// Tests substitute fakes for these.
type programLister interface {
	ListActive(ctx context.Context) ([]*models.Program, error)
}

type sectionCatalog interface {
	ListActiveRefs(ctx context.Context) ([]repositories.SectionRef, error)
	FindSection(ctx context.Context, programCode, yearLevel, sectionName, shift string) (int64, error)
}

type studentStore interface {
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	InsertTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
}

type accountStore interface {
	InsertTx(ctx context.Context, tx pgx.Tx, user *models.User) error
}

type importLogStore interface {
	Create(ctx context.Context, entry *models.ImportLog) error
	ListRecent(ctx context.Context, limit int) ([]*models.ImportLog, error)
}

// TransactionRunner executes fn within one database transaction, committing
// when fn returns nil and rolling back otherwise.
type TransactionRunner func(ctx context.Context, fn db.TransactionFn) error

// NormalizedStudent is a candidate row that passed validation, carrying its
// decoded identity and the section resolved at validation time (nil when the
// composite key matched nothing yet).
type NormalizedStudent struct {
	Row       int
	Candidate dto.CandidateRow
	Identity  rollnumber.Identity
	SectionID *int64
}

// ImportService validates candidate student batches against live reference
// data and applies accepted rows as independent inserts inside a single
// transaction, recording one audit entry per batch.
type ImportService struct {
	programs     programLister
	sections     sectionCatalog
	students     studentStore
	accounts     accountStore
	importLogs   importLogStore
	runTx        TransactionRunner
	maxBatchSize int
	logger       zerolog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	programs programLister,
	sections sectionCatalog,
	students studentStore,
	accounts accountStore,
	importLogs importLogStore,
	runTx TransactionRunner,
	maxBatchSize int,
	logger zerolog.Logger,
) *ImportService {
	return &ImportService{
		programs:     programs,
		sections:     sections,
		students:     students,
		accounts:     accounts,
		importLogs:   importLogs,
		runTx:        runTx,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// sectionKey builds the composite lookup key used to match candidate rows to
// active sections.
func sectionKey(program, yearLevel, sectionName, shift string) string {
	return program + "_" + yearLevel + "_" + sectionName + "_" + shift
}

// ValidateRows validates a batch against reference data and live uniqueness
// state. Every row lands in exactly one of the two return slices. A failed
// reference-data fetch is batch-fatal: no row is accepted and a single row-0
// error explains why.
func (s *ImportService) ValidateRows(ctx context.Context, rows []dto.CandidateRow) ([]NormalizedStudent, []dto.RowError) {
	programs, err := s.programs.ListActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Import validation could not load programs")
		return nil, batchWideFailure(err)
	}

	sectionRefs, err := s.sections.ListActiveRefs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Import validation could not load sections")
		return nil, batchWideFailure(err)
	}

	programCodes := make(map[string]bool, len(programs))
	availableCodes := make([]string, 0, len(programs))
	for _, p := range programs {
		programCodes[p.Code] = true
		availableCodes = append(availableCodes, p.Code)
	}

	sectionIDs := make(map[string]int64, len(sectionRefs))
	for _, ref := range sectionRefs {
		sectionIDs[sectionKey(ref.ProgramCode, ref.YearLevel, ref.SectionName, ref.Shift)] = ref.ID
	}

	var valid []NormalizedStudent
	var rowErrors []dto.RowError

	for i, row := range rows {
		rowNumber := i + 1
		var errs []string

		row = trimCandidate(row)

		if row.StudentID == "" {
			errs = append(errs, "Student ID is required")
		} else if !validation.IsValidRollNumber(row.StudentID) {
			errs = append(errs, "Invalid student ID format. Use: YY-PROGRAM-NN (e.g., 25-SWT-01)")
		}

		if row.Name == "" {
			errs = append(errs, "Name is required")
		}

		if row.Email == "" {
			errs = append(errs, "Email is required")
		} else if !validation.IsValidEmail(row.Email) {
			errs = append(errs, "Invalid email format")
		}

		if row.Program == "" {
			errs = append(errs, "Program is required")
		} else if !programCodes[row.Program] {
			errs = append(errs, "Invalid program. Available: "+strings.Join(availableCodes, ", "))
		}

		if row.Shift == "" {
			errs = append(errs, "Shift is required")
		} else if !rollnumber.IsValidShift(row.Shift) {
			errs = append(errs, "Invalid shift. Use: Morning or Evening")
		}

		if row.YearLevel == "" {
			errs = append(errs, "Year level is required")
		} else if !rollnumber.IsValidYearLevel(row.YearLevel) {
			errs = append(errs, "Invalid year level. Use: 1st, 2nd, or 3rd")
		}

		if row.Section == "" {
			errs = append(errs, "Section is required")
		}

		// Uniqueness reads live state: a duplicate introduced between here
		// and the insert still surfaces through the unique constraints.
		if row.StudentID != "" {
			exists, err := s.students.ExistsByStudentID(ctx, row.StudentID)
			if err != nil {
				errs = append(errs, "Could not verify student ID uniqueness")
			} else if exists {
				errs = append(errs, "Student ID already exists")
			}
		}

		if row.Email != "" {
			exists, err := s.students.ExistsByEmail(ctx, row.Email)
			if err != nil {
				errs = append(errs, "Could not verify email uniqueness")
			} else if exists {
				errs = append(errs, "Email already exists")
			}
		}

		var sectionID *int64
		if row.Program != "" && row.YearLevel != "" && row.Section != "" && row.Shift != "" {
			if id, ok := sectionIDs[sectionKey(row.Program, row.YearLevel, row.Section, row.Shift)]; ok {
				sectionID = &id
			} else {
				errs = append(errs, "Section not found for the given program, year, and shift")
			}
		}

		if len(errs) > 0 {
			rowErrors = append(rowErrors, dto.RowError{
				Row:       rowNumber,
				StudentID: displayStudentID(row.StudentID),
				Errors:    errs,
			})
			continue
		}

		identity, err := rollnumber.Parse(row.StudentID)
		if err != nil {
			// The grammar check above makes this unreachable; guard anyway.
			rowErrors = append(rowErrors, dto.RowError{
				Row:       rowNumber,
				StudentID: row.StudentID,
				Errors:    []string{err.Error()},
			})
			continue
		}

		valid = append(valid, NormalizedStudent{
			Row:       rowNumber,
			Candidate: row,
			Identity:  identity,
			SectionID: sectionID,
		})
	}

	return valid, rowErrors
}

// ImportStudents validates the batch, persists accepted rows inside one
// transaction with independent per-row outcomes and writes the audit entry.
// Row-level failures never abort the batch and never prevent the commit;
// only a transaction-fatal condition returns an error, in which case nothing
// was persisted.
func (s *ImportService) ImportStudents(ctx context.Context, rows []dto.CandidateRow) (*dto.ImportResult, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyImportBatch
	}
	if len(rows) > s.maxBatchSize {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("batch exceeds maximum size of %d rows", s.maxBatchSize))
	}

	result := &dto.ImportResult{
		Success: []dto.ImportOutcome{},
		Errors:  []dto.ImportOutcome{},
		Total:   len(rows),
	}

	valid, rowErrors := s.ValidateRows(ctx, rows)
	for _, re := range rowErrors {
		result.Errors = append(result.Errors, dto.ImportOutcome{
			Row:       re.Row,
			Success:   false,
			StudentID: re.StudentID,
			Error:     strings.Join(re.Errors, "; "),
			Errors:    re.Errors,
		})
	}

	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, candidate := range valid {
			outcome := s.persistStudent(ctx, tx, candidate)
			if outcome.Success {
				result.Success = append(result.Success, outcome)
			} else {
				result.Errors = append(result.Errors, outcome)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("total", len(rows)).Msg("Import transaction failed")
		s.logImport(ctx, fatalResult(len(rows), err))
		return nil, apperrors.NewCustomError(apperrors.ErrImportFatal, "import transaction failed, no rows were persisted")
	}

	s.logImport(ctx, result)

	s.logger.Info().
		Int("total", result.Total).
		Int("succeeded", len(result.Success)).
		Int("failed", len(result.Errors)).
		Msg("Student import completed")

	return result, nil
}

// persistStudent applies one accepted row inside its own savepoint so a
// failed insert does not poison the surrounding transaction for the
// remaining rows.
func (s *ImportService) persistStudent(ctx context.Context, tx pgx.Tx, candidate NormalizedStudent) dto.ImportOutcome {
	row := candidate.Candidate
	failure := func(msg string) dto.ImportOutcome {
		return dto.ImportOutcome{
			Row:       candidate.Row,
			Success:   false,
			StudentID: row.StudentID,
			Error:     msg,
		}
	}

	// Initial credentials: the roll number serves as username and password.
	// The plaintext is only carried in the response for distribution; what
	// reaches the database is the hash.
	password := row.StudentID
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return failure("failed to prepare credentials")
	}

	sectionID := s.resolveSectionID(ctx, candidate)

	rowTx, err := tx.Begin(ctx)
	if err != nil {
		return failure("failed to start row savepoint: " + err.Error())
	}

	studentID := row.StudentID
	user := &models.User{
		Username:     row.StudentID,
		Email:        row.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleStudent,
		StudentID:    &studentID,
		IsActive:     true,
	}
	if err := s.accounts.InsertTx(ctx, rowTx, user); err != nil {
		_ = rowTx.Rollback(ctx)
		return failure(persistErrorMessage(err))
	}

	student := &models.Student{
		StudentID:     row.StudentID,
		RollNumber:    row.StudentID,
		Name:          row.Name,
		Email:         row.Email,
		Phone:         row.Phone,
		UserID:        &user.ID,
		Program:       row.Program,
		Shift:         row.Shift,
		YearLevel:     row.YearLevel,
		Section:       row.Section,
		SectionID:     sectionID,
		AdmissionYear: candidate.Identity.AdmissionYear,
		RollPrefix:    candidate.Identity.ProgramCode,
		Username:      row.StudentID,
	}
	if err := s.students.InsertTx(ctx, rowTx, student); err != nil {
		_ = rowTx.Rollback(ctx)
		return failure(persistErrorMessage(err))
	}

	if err := rowTx.Commit(ctx); err != nil {
		return failure("failed to commit row: " + err.Error())
	}

	return dto.ImportOutcome{
		Row:       candidate.Row,
		Success:   true,
		StudentID: row.StudentID,
		Name:      row.Name,
		Email:     row.Email,
		Password:  password,
	}
}

// resolveSectionID re-resolves the section at persistence time via the
// dual-strategy lookup. Absence of a section is a soft condition here: the
// student is inserted without an assignment rather than failing the row.
func (s *ImportService) resolveSectionID(ctx context.Context, candidate NormalizedStudent) *int64 {
	row := candidate.Candidate
	id, err := s.sections.FindSection(ctx, row.Program, row.YearLevel, row.Section, row.Shift)
	if err == nil {
		return &id
	}
	if !errors.Is(err, repositories.ErrSectionNotFound) {
		s.logger.Warn().Err(err).Str("studentId", row.StudentID).Msg("Section lookup failed during import, falling back to validation result")
		return candidate.SectionID
	}
	return nil
}

// GetImportHistory returns the most recent import audit entries
func (s *ImportService) GetImportHistory(ctx context.Context) ([]*models.ImportLog, error) {
	entries, err := s.importLogs.ListRecent(ctx, importHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving import history: %w", err)
	}
	return entries, nil
}

// logImport appends the audit entry for a batch. Best-effort: a logging
// failure must not fail the import.
func (s *ImportService) logImport(ctx context.Context, result *dto.ImportResult) {
	details, err := json.Marshal(result.Errors)
	if err != nil {
		details = []byte("[]")
	}

	entry := &models.ImportLog{
		BatchID:           uuid.New().String(),
		ImportType:        models.ImportTypeStudent,
		TotalRecords:      result.Total,
		SuccessfulRecords: len(result.Success),
		FailedRecords:     len(result.Errors),
		ErrorDetails:      details,
	}

	if err := s.importLogs.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write import audit log")
	}
}

func batchWideFailure(err error) []dto.RowError {
	return []dto.RowError{{
		Row:       batchWideErrorRow,
		StudentID: "N/A",
		Errors:    []string{fmt.Errorf("%w: %v", apperrors.ErrReferenceData, err).Error()},
	}}
}

func fatalResult(total int, err error) *dto.ImportResult {
	return &dto.ImportResult{
		Success: []dto.ImportOutcome{},
		Errors: []dto.ImportOutcome{{
			Row:     batchWideErrorRow,
			Success: false,
			Error:   "import transaction failed: " + err.Error(),
		}},
		Total: total,
	}
}

// persistErrorMessage maps insert errors to the messages clients act on,
// keeping race-condition duplicates distinguishable from other failures.
func persistErrorMessage(err error) string {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_student_id_key"),
		dberrors.IsDuplicateConstraintError(err, "users_username_key"):
		return "Student ID already exists"
	case dberrors.IsDuplicateConstraintError(err, "students_email_key"),
		dberrors.IsDuplicateConstraintError(err, "users_email_key"):
		return "Email already exists"
	case dberrors.IsUniqueViolation(err):
		return "Duplicate record"
	default:
		return err.Error()
	}
}

func trimCandidate(row dto.CandidateRow) dto.CandidateRow {
	row.StudentID = strings.TrimSpace(row.StudentID)
	row.Name = strings.TrimSpace(row.Name)
	row.Email = strings.TrimSpace(row.Email)
	row.Phone = strings.TrimSpace(row.Phone)
	row.Program = strings.TrimSpace(row.Program)
	row.Shift = strings.TrimSpace(row.Shift)
	row.YearLevel = strings.TrimSpace(row.YearLevel)
	row.Section = strings.TrimSpace(row.Section)
	return row
}

func displayStudentID(studentID string) string {
	if studentID == "" {
		return "N/A"
	}
	return studentID
}
