package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	ProgramRepository   *ProgramRepository
	SectionRepository   *SectionRepository
	StudentRepository   *StudentRepository
	ImportLogRepository *ImportLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		ProgramRepository:   NewProgramRepository(db),
		SectionRepository:   NewSectionRepository(db),
		StudentRepository:   NewStudentRepository(db),
		ImportLogRepository: NewImportLogRepository(db),
	}
}
