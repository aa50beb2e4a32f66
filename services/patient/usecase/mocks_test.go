package usecase

import (
	"context"
	"sort"
	"strings"

	"patientservice/domain"

	"github.com/google/uuid"
)

// fakePatientRepo is an in-memory PatientRepo with the same observable
// behaviour as the postgres implementation: store-assigned ids, typed
// not-found errors and a unique constraint on email.
type fakePatientRepo struct {
	patients []*domain.Patient

	insertCalls int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{}
}

func (f *fakePatientRepo) Insert(ctx context.Context, patient *domain.Patient) (uuid.UUID, error) {
	f.insertCalls++
	for _, p := range f.patients {
		if p.Email == patient.Email {
			return uuid.Nil, domain.ErrEmailExists(patient.Email)
		}
	}

	patient.ID = uuid.New()
	stored := *patient
	f.patients = append(f.patients, &stored)
	return patient.ID, nil
}

func (f *fakePatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	for _, p := range f.patients {
		if p.ID == id {
			found := *p
			return &found, nil
		}
	}
	return nil, domain.ErrPatientNotFound(id.String())
}

func (f *fakePatientRepo) FindByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email {
			found := *p
			return &found, nil
		}
	}
	return nil, domain.ErrPatientNotFound(email)
}

func (f *fakePatientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, p := range f.patients {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePatientRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	for _, p := range f.patients {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	for _, p := range f.patients {
		if p.Email == patient.Email && p.ID != patient.ID {
			return domain.ErrEmailExists(patient.Email)
		}
	}
	for i, p := range f.patients {
		if p.ID == patient.ID {
			updated := *patient
			f.patients[i] = &updated
			return nil
		}
	}
	return domain.ErrPatientNotFound(patient.ID.String())
}

func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, p := range f.patients {
		if p.ID == id {
			f.patients = append(f.patients[:i], f.patients[i+1:]...)
			return nil
		}
	}
	return domain.ErrPatientNotFound(id.String())
}

func (f *fakePatientRepo) FindAll(ctx context.Context) ([]domain.Patient, error) {
	return f.snapshot(), nil
}

func (f *fakePatientRepo) FindAllSorted(ctx context.Context, sortBy, direction string) ([]domain.Patient, error) {
	patients := f.snapshot()
	if err := sortPatients(patients, sortBy, direction); err != nil {
		return nil, err
	}
	return patients, nil
}

func (f *fakePatientRepo) FindPage(ctx context.Context, page, size int, sortBy, direction string) ([]domain.Patient, int64, error) {
	patients := f.snapshot()
	if err := sortPatients(patients, sortBy, direction); err != nil {
		return nil, 0, err
	}

	total := int64(len(patients))
	start := page * size
	if start >= len(patients) {
		return []domain.Patient{}, total, nil
	}
	end := start + size
	if end > len(patients) {
		end = len(patients)
	}
	return patients[start:end], total, nil
}

func (f *fakePatientRepo) FindByNameContains(ctx context.Context, fragment string) ([]domain.Patient, error) {
	matches := make([]domain.Patient, 0)
	for _, p := range f.patients {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment)) {
			matches = append(matches, *p)
		}
	}
	return matches, nil
}

func (f *fakePatientRepo) FindByDateOfBirthBetween(ctx context.Context, start, end domain.Date) ([]domain.Patient, error) {
	matches := make([]domain.Patient, 0)
	for _, p := range f.patients {
		dob := p.DateOfBirth.Time
		if !dob.Before(start.Time) && !dob.After(end.Time) {
			matches = append(matches, *p)
		}
	}
	return matches, nil
}

func (f *fakePatientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.patients)), nil
}

func (f *fakePatientRepo) snapshot() []domain.Patient {
	patients := make([]domain.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		patients = append(patients, *p)
	}
	return patients
}

func sortPatients(patients []domain.Patient, sortBy, direction string) error {
	var less func(a, b domain.Patient) bool
	switch sortBy {
	case "name":
		less = func(a, b domain.Patient) bool { return a.Name < b.Name }
	case "email":
		less = func(a, b domain.Patient) bool { return a.Email < b.Email }
	case "date_of_birth":
		less = func(a, b domain.Patient) bool { return a.DateOfBirth.Time.Before(b.DateOfBirth.Time) }
	case "registered_date":
		less = func(a, b domain.Patient) bool { return a.RegisteredDate.Time.Before(b.RegisteredDate.Time) }
	case "created_at":
		less = func(a, b domain.Patient) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return domain.ValidationErr("Unknown sort field: %s", sortBy)
	}

	sort.SliceStable(patients, func(i, j int) bool {
		if direction == domain.SortDescending {
			return less(patients[j], patients[i])
		}
		return less(patients[i], patients[j])
	})
	return nil
}

// recordingNotifier captures billing notifications for assertions.
type recordingNotifier struct {
	calls chan billingCall
	err   error
}

type billingCall struct {
	patientID string
	name      string
	email     string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{calls: make(chan billingCall, 16)}
}

func (r *recordingNotifier) CreateAccount(ctx context.Context, patientID, name, email string) error {
	r.calls <- billingCall{patientID: patientID, name: name, email: email}
	return r.err
}
