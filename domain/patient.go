package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

type Patient struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	DateOfBirth    Date      `json:"date_of_birth"`
	RegisteredDate Date      `json:"registered_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PatientRequest is the payload for both create and update. Dates carry
// valid:"-" because govalidator cannot inspect them; Validate covers those.
type PatientRequest struct {
	Name           string `json:"patient_name" valid:"required~Name is required,length(2|150)~Name must be more than 2 characters"`
	Email          string `json:"email" valid:"required~Email is required,email~Email should be valid"`
	Address        string `json:"address" valid:"required~Address is required"`
	DateOfBirth    Date   `json:"date_of_birth" valid:"-"`
	RegisteredDate Date   `json:"registered_date" valid:"-"`
}

// Validate enforces the structural constraints on a request before it is
// handed to the usecase. Uniqueness and existence stay with the usecase.
func (r *PatientRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Address = strings.TrimSpace(r.Address)

	if _, err := govalidator.ValidateStruct(r); err != nil {
		return ValidationErr("%s", err.Error())
	}
	if r.DateOfBirth.IsZero() {
		return ValidationErr("Date of birth is required")
	}
	if !r.DateOfBirth.Before(time.Now()) {
		return ValidationErr("Date of birth should be in past")
	}
	if r.RegisteredDate.IsZero() {
		return ValidationErr("Registered date is required")
	}
	return nil
}

// PatientResponse is the externally visible shape. The registered date is
// deliberately not part of it.
type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"patient_name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	DateOfBirth Date      `json:"date_of_birth"`
}

type PatientPage struct {
	Items      []PatientResponse `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
}

type PatientStatistics struct {
	TotalPatients int64     `json:"total_patients"`
	Timestamp     time.Time `json:"timestamp"`
}

type GenericResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

type PatientRepo interface {
	Insert(ctx context.Context, patient *Patient) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	FindByEmail(ctx context.Context, email string) (*Patient, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, patient *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context) ([]Patient, error)
	FindAllSorted(ctx context.Context, sortBy, direction string) ([]Patient, error)
	FindPage(ctx context.Context, page, size int, sortBy, direction string) ([]Patient, int64, error)
	FindByNameContains(ctx context.Context, fragment string) ([]Patient, error)
	FindByDateOfBirthBetween(ctx context.Context, start, end Date) ([]Patient, error)
	Count(ctx context.Context) (int64, error)
}

type PatientUseCase interface {
	GetAllPatients(ctx context.Context) ([]PatientResponse, error)
	GetPatientsPage(ctx context.Context, page, size int, sortBy, direction string) (*PatientPage, error)
	GetAllPatientsSorted(ctx context.Context, sortBy, direction string) ([]PatientResponse, error)
	GetPatientByID(ctx context.Context, id string) (*PatientResponse, error)
	CreatePatient(ctx context.Context, req *PatientRequest) (string, error)
	CreatePatients(ctx context.Context, reqs []PatientRequest) ([]string, error)
	UpdatePatient(ctx context.Context, id string, req *PatientRequest) (*PatientResponse, error)
	DeletePatient(ctx context.Context, id string) error
	SearchPatientsByName(ctx context.Context, name string) ([]PatientResponse, error)
	GetPatientsByDateOfBirthRange(ctx context.Context, start, end Date) ([]PatientResponse, error)
	PatientExists(ctx context.Context, id string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetStatistics(ctx context.Context) (*PatientStatistics, error)
}

// BillingNotifier provisions a billing account for a freshly created
// patient. Failures are logged and never fail the creation itself.
type BillingNotifier interface {
	CreateAccount(ctx context.Context, patientID, name, email string) error
}
