package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"patientservice/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const patientColumns = "id, name, email, address, date_of_birth, registered_date, created_at, updated_at"

const uniqueViolationCode = "23505"

// Columns callers are allowed to sort by. Anything else is rejected before
// the name reaches the ORDER BY clause.
var sortColumns = map[string]string{
	"name":            "name",
	"email":           "email",
	"date_of_birth":   "date_of_birth",
	"registered_date": "registered_date",
	"created_at":      "created_at",
}

type patientRepository struct {
	db *pgxpool.Pool
}

func NewPatientRepository(database *pgxpool.Pool) domain.PatientRepo {
	return &patientRepository{
		db: database,
	}
}

func (pr *patientRepository) Insert(ctx context.Context, patient *domain.Patient) (uuid.UUID, error) {
	query := `
		INSERT INTO patients (name, email, address, date_of_birth, registered_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`

	now := time.Now()

	var id uuid.UUID
	err := pr.db.QueryRow(ctx, query, patient.Name, patient.Email, patient.Address,
		patient.DateOfBirth.Time, patient.RegisteredDate.Time, now, now).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, domain.ErrEmailExists(patient.Email)
		}
		return uuid.Nil, fmt.Errorf("could not insert patient: %v", err)
	}

	patient.ID = id
	patient.CreatedAt = now
	patient.UpdatedAt = now

	return id, nil
}

func (pr *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE id = $1;
	`

	patient, err := pr.scanOne(pr.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound(id.String())
		}
		return nil, fmt.Errorf("could not get patient: %v", err)
	}

	return patient, nil
}

func (pr *patientRepository) FindByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE email = $1;
	`

	patient, err := pr.scanOne(pr.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound(email)
		}
		return nil, fmt.Errorf("could not get patient by email: %v", err)
	}

	return patient, nil
}

func (pr *patientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE email = $1);`

	var exists bool
	if err := pr.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check email existence: %v", err)
	}

	return exists, nil
}

func (pr *patientRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1);`

	var exists bool
	if err := pr.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check patient existence: %v", err)
	}

	return exists, nil
}

func (pr *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, address = $3, date_of_birth = $4, registered_date = $5, updated_at = $6
		WHERE id = $7;
	`

	now := time.Now()
	tag, err := pr.db.Exec(ctx, query, patient.Name, patient.Email, patient.Address,
		patient.DateOfBirth.Time, patient.RegisteredDate.Time, now, patient.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists(patient.Email)
		}
		return fmt.Errorf("could not update patient: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPatientNotFound(patient.ID.String())
	}

	patient.UpdatedAt = now
	return nil
}

func (pr *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1;`

	tag, err := pr.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("could not delete patient: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPatientNotFound(id.String())
	}

	return nil
}

func (pr *patientRepository) FindAll(ctx context.Context) ([]domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients;
	`

	rows, err := pr.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not get all patients: %v", err)
	}
	defer rows.Close()

	return pr.scanMany(rows)
}

func (pr *patientRepository) FindAllSorted(ctx context.Context, sortBy, direction string) ([]domain.Patient, error) {
	order, err := orderClause(sortBy, direction)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + patientColumns + `
		FROM patients
		ORDER BY ` + order + `;
	`

	rows, err := pr.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not get sorted patients: %v", err)
	}
	defer rows.Close()

	return pr.scanMany(rows)
}

func (pr *patientRepository) FindPage(ctx context.Context, page, size int, sortBy, direction string) ([]domain.Patient, int64, error) {
	order, err := orderClause(sortBy, direction)
	if err != nil {
		return nil, 0, err
	}

	total, err := pr.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + patientColumns + `
		FROM patients
		ORDER BY ` + order + `
		LIMIT $1 OFFSET $2;
	`

	rows, err := pr.db.Query(ctx, query, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("could not get patients page: %v", err)
	}
	defer rows.Close()

	patients, err := pr.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (pr *patientRepository) FindByNameContains(ctx context.Context, fragment string) ([]domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE name ILIKE '%' || $1 || '%';
	`

	rows, err := pr.db.Query(ctx, query, fragment)
	if err != nil {
		return nil, fmt.Errorf("could not search patients by name: %v", err)
	}
	defer rows.Close()

	return pr.scanMany(rows)
}

func (pr *patientRepository) FindByDateOfBirthBetween(ctx context.Context, start, end domain.Date) ([]domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE date_of_birth BETWEEN $1 AND $2;
	`

	rows, err := pr.db.Query(ctx, query, start.Time, end.Time)
	if err != nil {
		return nil, fmt.Errorf("could not get patients by date of birth range: %v", err)
	}
	defer rows.Close()

	return pr.scanMany(rows)
}

func (pr *patientRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM patients;`

	var count int64
	if err := pr.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("could not count patients: %v", err)
	}

	return count, nil
}

func (pr *patientRepository) scanOne(row pgx.Row) (*domain.Patient, error) {
	var patient domain.Patient
	err := row.Scan(&patient.ID, &patient.Name, &patient.Email, &patient.Address,
		&patient.DateOfBirth, &patient.RegisteredDate, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (pr *patientRepository) scanMany(rows pgx.Rows) ([]domain.Patient, error) {
	patients := make([]domain.Patient, 0)
	for rows.Next() {
		var patient domain.Patient
		err := rows.Scan(&patient.ID, &patient.Name, &patient.Email, &patient.Address,
			&patient.DateOfBirth, &patient.RegisteredDate, &patient.CreatedAt, &patient.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan patient: %v", err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return patients, nil
}

func orderClause(sortBy, direction string) (string, error) {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return "", domain.ValidationErr("Unknown sort field: %s", sortBy)
	}

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case domain.SortAscending, "":
		return column + " ASC", nil
	case domain.SortDescending:
		return column + " DESC", nil
	default:
		return "", domain.ValidationErr("Unknown sort direction: %s", direction)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
