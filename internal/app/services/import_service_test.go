package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/repositories"
	"github.com/hmansoor/campusgate/internal/db"
	"github.com/hmansoor/campusgate/internal/pkg/apperrors"
)

// fakeTx stands in for a pgx transaction. Only the savepoint methods are
// implemented; anything else panics through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }
func (f *fakeTx) Commit(ctx context.Context) error          { return nil }
func (f *fakeTx) Rollback(ctx context.Context) error        { return nil }

func fakeRunTx(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, &fakeTx{})
}

type fakePrograms struct {
	programs []*models.Program
	err      error
}

func (f *fakePrograms) ListActive(ctx context.Context) ([]*models.Program, error) {
	return f.programs, f.err
}

type fakeSections struct {
	refs    []repositories.SectionRef
	refsErr error
	findID  int64
	findErr error
}

func (f *fakeSections) ListActiveRefs(ctx context.Context) ([]repositories.SectionRef, error) {
	return f.refs, f.refsErr
}

func (f *fakeSections) FindSection(ctx context.Context, programCode, yearLevel, sectionName, shift string) (int64, error) {
	if f.findErr != nil {
		return 0, f.findErr
	}
	return f.findID, nil
}

type fakeStudents struct {
	existingIDs    map[string]bool
	existingEmails map[string]bool
	insertErrs     map[string]error
	inserted       []*models.Student
}

func (f *fakeStudents) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	return f.existingIDs[studentID], nil
}

func (f *fakeStudents) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.existingEmails[email], nil
}

func (f *fakeStudents) InsertTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	if err := f.insertErrs[student.StudentID]; err != nil {
		return err
	}
	student.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, student)
	return nil
}

type fakeAccounts struct {
	inserted  []*models.User
	insertErr error
}

func (f *fakeAccounts) InsertTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	user.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, user)
	return nil
}

type fakeImportLogs struct {
	entries   []*models.ImportLog
	createErr error
}

func (f *fakeImportLogs) Create(ctx context.Context, entry *models.ImportLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeImportLogs) ListRecent(ctx context.Context, limit int) ([]*models.ImportLog, error) {
	return f.entries, nil
}

type importFixture struct {
	programs *fakePrograms
	sections *fakeSections
	students *fakeStudents
	accounts *fakeAccounts
	logs     *fakeImportLogs
	service  *ImportService
}

func newImportFixture() *importFixture {
	f := &importFixture{
		programs: &fakePrograms{programs: []*models.Program{
			{ID: 1, Code: "SWT", Name: "Software Technology", IsActive: true},
			{ID: 2, Code: "CIT", Name: "Computer Information Technology", IsActive: true},
		}},
		sections: &fakeSections{
			refs: []repositories.SectionRef{
				{ID: 4, ProgramCode: "SWT", YearLevel: "1st", SectionName: "A", Shift: "Morning"},
				{ID: 5, ProgramCode: "SWT", YearLevel: "1st", SectionName: "A", Shift: "Evening"},
			},
			findID: 4,
		},
		students: &fakeStudents{
			existingIDs:    map[string]bool{},
			existingEmails: map[string]bool{},
			insertErrs:     map[string]error{},
		},
		accounts: &fakeAccounts{},
		logs:     &fakeImportLogs{},
	}
	f.service = NewImportService(
		f.programs, f.sections, f.students, f.accounts, f.logs,
		fakeRunTx, 1000, zerolog.Nop(),
	)
	return f
}

func validRow(studentID, email string) dto.CandidateRow {
	return dto.CandidateRow{
		StudentID: studentID,
		Name:      "John Doe",
		Email:     email,
		Program:   "SWT",
		Shift:     "Morning",
		YearLevel: "1st",
		Section:   "A",
	}
}

func TestImportStudents_AllRowsSucceed(t *testing.T) {
	f := newImportFixture()

	rows := []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
		validRow("25-SWT-02", "two@example.com"),
	}

	result, err := f.service.ImportStudents(context.Background(), rows)
	require.NoError(t, err)

	assert.Len(t, result.Success, 2)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Total)

	// Initial credentials: username and password are the roll number,
	// plaintext only in the response.
	assert.Equal(t, "25-SWT-01", result.Success[0].Password)
	require.Len(t, f.accounts.inserted, 2)
	assert.Equal(t, "25-SWT-01", f.accounts.inserted[0].Username)
	assert.NotEqual(t, "25-SWT-01", f.accounts.inserted[0].PasswordHash)
	assert.Equal(t, models.RoleStudent, f.accounts.inserted[0].Role)

	require.Len(t, f.students.inserted, 2)
	assert.Equal(t, 2025, f.students.inserted[0].AdmissionYear)
	assert.Equal(t, "SWT", f.students.inserted[0].RollPrefix)
	require.NotNil(t, f.students.inserted[0].SectionID)
	assert.Equal(t, int64(4), *f.students.inserted[0].SectionID)
}

func TestImportStudents_FormattedPhoneStoredAsIs(t *testing.T) {
	f := newImportFixture()

	row := validRow("25-SWT-01", "one@example.com")
	row.Phone = "0300-1234567"

	result, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{row})
	require.NoError(t, err)

	// Phone carries no format rule: the value is trimmed and kept verbatim
	assert.Empty(t, result.Errors)
	require.Len(t, f.students.inserted, 1)
	assert.Equal(t, "0300-1234567", f.students.inserted[0].Phone)
}

func TestImportStudents_PartialFailureStillCommits(t *testing.T) {
	f := newImportFixture()

	rows := []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
		validRow("25-SWT-02", "not-an-email"),
		validRow("25-SWT-03", "three@example.com"),
	}

	result, err := f.service.ImportStudents(context.Background(), rows)
	require.NoError(t, err)

	assert.Len(t, result.Success, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "25-SWT-02", result.Errors[0].StudentID)
	assert.Contains(t, result.Errors[0].Errors, "Invalid email format")
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, result.Total, len(result.Success)+len(result.Errors))

	// Valid rows were persisted despite the rejected one
	assert.Len(t, f.students.inserted, 2)
}

func TestImportStudents_DuplicateRejectedAtValidation(t *testing.T) {
	f := newImportFixture()
	f.students.existingIDs["25-SWT-01"] = true
	f.students.existingEmails["one@example.com"] = true

	result, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Errors, "Student ID already exists")
	assert.Contains(t, result.Errors[0].Errors, "Email already exists")
	assert.Empty(t, f.students.inserted)
}

func TestImportStudents_ConcurrentDuplicateSurfacesAsRowError(t *testing.T) {
	f := newImportFixture()
	f.students.insertErrs["25-SWT-01"] = &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "students_student_id_key",
	}

	result, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
		validRow("25-SWT-02", "two@example.com"),
	})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Student ID already exists", result.Errors[0].Error)
	assert.Len(t, result.Success, 1)
	assert.Equal(t, "25-SWT-02", result.Success[0].StudentID)
}

func TestImportStudents_ReferenceDataFailureIsBatchFatal(t *testing.T) {
	f := newImportFixture()
	f.programs.err = errors.New("connection refused")

	result, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
		validRow("25-SWT-02", "two@example.com"),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Row)
	assert.Equal(t, "N/A", result.Errors[0].StudentID)
	require.Len(t, result.Errors[0].Errors, 1)
	assert.Contains(t, result.Errors[0].Errors[0], "failed to load reference data")
	assert.Empty(t, f.students.inserted)
}

func TestImportStudents_MissingSectionAtPersistIsSoft(t *testing.T) {
	f := newImportFixture()
	f.sections.findErr = repositories.ErrSectionNotFound

	result, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
	})
	require.NoError(t, err)

	require.Len(t, result.Success, 1)
	require.Len(t, f.students.inserted, 1)
	assert.Nil(t, f.students.inserted[0].SectionID)
}

func TestImportStudents_EmptyBatch(t *testing.T) {
	f := newImportFixture()

	_, err := f.service.ImportStudents(context.Background(), nil)
	require.ErrorIs(t, err, apperrors.ErrEmptyImportBatch)
	assert.Empty(t, f.logs.entries)
}

func TestImportStudents_BatchTooLarge(t *testing.T) {
	f := newImportFixture()

	rows := make([]dto.CandidateRow, 1001)
	for i := range rows {
		rows[i] = validRow("25-SWT-01", "one@example.com")
	}

	_, err := f.service.ImportStudents(context.Background(), rows)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestImportStudents_WritesOneAuditEntryPerBatch(t *testing.T) {
	f := newImportFixture()

	_, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
		validRow("25-SWT-02", "not-an-email"),
	})
	require.NoError(t, err)

	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, models.ImportTypeStudent, entry.ImportType)
	assert.Equal(t, 2, entry.TotalRecords)
	assert.Equal(t, 1, entry.SuccessfulRecords)
	assert.Equal(t, 1, entry.FailedRecords)
	_, err = uuid.Parse(entry.BatchID)
	assert.NoError(t, err, "batch id should be a UUID")
}

func TestImportStudents_AuditLogFailureDoesNotFailImport(t *testing.T) {
	f := newImportFixture()
	f.logs.createErr = errors.New("import_logs unavailable")

	result, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
	})
	require.NoError(t, err)
	assert.Len(t, result.Success, 1)
}

func TestImportStudents_TransactionFailureIsFatal(t *testing.T) {
	f := newImportFixture()
	failingRunTx := func(ctx context.Context, fn db.TransactionFn) error {
		return errors.New("deadlock detected")
	}
	f.service = NewImportService(
		f.programs, f.sections, f.students, f.accounts, f.logs,
		failingRunTx, 1000, zerolog.Nop(),
	)

	_, err := f.service.ImportStudents(context.Background(), []dto.CandidateRow{
		validRow("25-SWT-01", "one@example.com"),
	})
	require.ErrorIs(t, err, apperrors.ErrImportFatal)

	// The fatal outcome still leaves an audit trail
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, 0, f.logs.entries[0].SuccessfulRecords)
}

func TestValidateRows_UnknownSectionIsHardError(t *testing.T) {
	f := newImportFixture()

	row := validRow("25-SWT-01", "one@example.com")
	row.Section = "Z"

	valid, rowErrors := f.service.ValidateRows(context.Background(), []dto.CandidateRow{row})
	assert.Empty(t, valid)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0].Errors, "Section not found for the given program, year, and shift")
}

func TestValidateRows_CollectsAllFieldErrors(t *testing.T) {
	f := newImportFixture()

	valid, rowErrors := f.service.ValidateRows(context.Background(), []dto.CandidateRow{{}})
	assert.Empty(t, valid)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 1, rowErrors[0].Row)
	assert.Equal(t, "N/A", rowErrors[0].StudentID)
	assert.GreaterOrEqual(t, len(rowErrors[0].Errors), 6)
}

func TestValidateRows_EveningProgramCodeNormalized(t *testing.T) {
	f := newImportFixture()

	row := validRow("25-ESWT-01", "one@example.com")
	row.Shift = "Evening"

	valid, rowErrors := f.service.ValidateRows(context.Background(), []dto.CandidateRow{row})
	require.Empty(t, rowErrors)
	require.Len(t, valid, 1)
	assert.Equal(t, "SWT", valid[0].Identity.ProgramCode)
	assert.Equal(t, 2025, valid[0].Identity.AdmissionYear)
}
