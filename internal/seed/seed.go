package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmansoor/campusgate/internal/app/models"
)

// defaultPrograms are the D.A.E programs created on first startup.
var defaultPrograms = []struct {
	Code string
	Name string
}{
	{"SWT", "Software Technology"},
	{"CIT", "Computer Information Technology"},
	{"ELX", "Electronics Technology"},
}

// CreateDefaultData seeds the program catalog, one section per program,
// year and shift, and the default admin account. Safe to run on every
// startup: existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (programs, sections, admin)...")
	var finalErr error

	for _, p := range defaultPrograms {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO programs (code, name, is_active)
			VALUES ($1, $2, TRUE)
			ON CONFLICT (code) DO NOTHING`,
			p.Code, p.Name)
		if err != nil {
			lgr.Error().Err(err).Str("program", p.Code).Msg("Error seeding program")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, yearLevel := range []string{"1st", "2nd", "3rd"} {
			for _, shift := range []string{"Morning", "Evening"} {
				_, err := dbPool.Exec(ctx, `
					INSERT INTO sections (program_id, year_level, shift, section_name, capacity, current_students, is_active)
					SELECT id, $2, $3, 'A', 40, 0, TRUE FROM programs WHERE code = $1
					ON CONFLICT (program_id, year_level, shift, section_name) DO NOTHING`,
					p.Code, yearLevel, shift)
				if err != nil {
					lgr.Error().Err(err).Str("program", p.Code).Str("yearLevel", yearLevel).Msg("Error seeding section")
					finalErr = errors.Join(finalErr, err)
				}
			}
		}
	}

	var adminExists bool
	err := dbPool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`, models.RoleAdmin).Scan(&adminExists)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for admin user")
		return errors.Join(finalErr, err)
	}

	if !adminExists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			return errors.Join(finalErr, err)
		}

		_, err = dbPool.Exec(ctx, `
			INSERT INTO users (username, email, password_hash, role, is_active, created_at)
			VALUES ($1, $2, $3, $4, TRUE, NOW())
			ON CONFLICT (username) DO NOTHING`,
			"admin", "admin@campusgate.edu.pk", string(hashedPassword), models.RoleAdmin)
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating default admin user")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Msg("Default admin user created. Change the password after first login.")
		}
	}

	return finalErr
}
