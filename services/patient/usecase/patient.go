package usecase

import (
	"context"
	"time"

	"patientservice/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type patientUC struct {
	patientRepo domain.PatientRepo
	billing     domain.BillingNotifier
	log         *logrus.Logger
	TimeOut     time.Duration
}

func NewPatientUseCase(repo domain.PatientRepo, billing domain.BillingNotifier, log *logrus.Logger, timeOut time.Duration) domain.PatientUseCase {
	return &patientUC{
		patientRepo: repo,
		billing:     billing,
		log:         log,
		TimeOut:     timeOut,
	}
}

func (pUC *patientUC) GetAllPatients(ctx context.Context) ([]domain.PatientResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Info("Fetching all patients")

	patients, err := pUC.patientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ToPatientResponses(patients), nil
}

func (pUC *patientUC) GetPatientsPage(ctx context.Context, page, size int, sortBy, direction string) (*domain.PatientPage, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Fetching patients page %d of size %d", page, size)

	patients, total, err := pUC.patientRepo.FindPage(ctx, page, size, sortBy, direction)
	if err != nil {
		return nil, err
	}

	return &domain.PatientPage{
		Items:      domain.ToPatientResponses(patients),
		TotalCount: total,
		Page:       page,
		Size:       size,
	}, nil
}

func (pUC *patientUC) GetAllPatientsSorted(ctx context.Context, sortBy, direction string) ([]domain.PatientResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Fetching patients sorted by %s in %s direction", sortBy, direction)

	patients, err := pUC.patientRepo.FindAllSorted(ctx, sortBy, direction)
	if err != nil {
		return nil, err
	}
	return domain.ToPatientResponses(patients), nil
}

func (pUC *patientUC) GetPatientByID(ctx context.Context, id string) (*domain.PatientResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Fetching patient with id: %s", id)

	patientID, err := uuid.Parse(id)
	if err != nil {
		// malformed ids surface the same NotFound as missing ones
		pUC.log.Errorf("Invalid UUID format: %s", id)
		return nil, domain.ErrPatientNotFound(id)
	}

	patient, err := pUC.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return domain.ToPatientResponse(patient), nil
}

func (pUC *patientUC) CreatePatient(ctx context.Context, req *domain.PatientRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Creating new patient with name: %s", req.Name)

	exists, err := pUC.patientRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrEmailExists(req.Email)
	}

	patient := domain.ToPatient(req)
	id, err := pUC.patientRepo.Insert(ctx, patient)
	if err != nil {
		return "", err
	}

	pUC.log.Infof("Patient created successfully with ID: %s", id)
	pUC.notifyBilling(id.String(), patient.Name, patient.Email)

	return id.String(), nil
}

func (pUC *patientUC) CreatePatients(ctx context.Context, reqs []domain.PatientRequest) ([]string, error) {
	pUC.log.Infof("Creating %d patients in bulk", len(reqs))

	createdIDs := make([]string, 0, len(reqs))
	for i := range reqs {
		// Sequential on purpose: the returned ids keep input order and the
		// first failure halts the batch with prior creations committed.
		id, err := pUC.CreatePatient(ctx, &reqs[i])
		if err != nil {
			return nil, err
		}
		createdIDs = append(createdIDs, id)
	}

	pUC.log.Infof("Successfully created %d patients", len(createdIDs))
	return createdIDs, nil
}

func (pUC *patientUC) UpdatePatient(ctx context.Context, id string, req *domain.PatientRequest) (*domain.PatientResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Updating patient with id: %s", id)

	patientID, err := uuid.Parse(id)
	if err != nil {
		pUC.log.Errorf("Invalid UUID format: %s", id)
		return nil, domain.ErrPatientNotFound(id)
	}

	patient, err := pUC.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if patient.Email != req.Email {
		owner, err := pUC.patientRepo.FindByEmail(ctx, req.Email)
		if err != nil && domain.KindOf(err) != domain.KindNotFound {
			return nil, err
		}
		if owner != nil {
			return nil, domain.ErrEmailExists(req.Email)
		}
	}

	patient.Name = req.Name
	patient.Email = req.Email
	patient.Address = req.Address
	patient.DateOfBirth = req.DateOfBirth
	patient.RegisteredDate = req.RegisteredDate

	if err := pUC.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	pUC.log.Infof("Patient updated successfully with ID: %s", patient.ID)
	return domain.ToPatientResponse(patient), nil
}

func (pUC *patientUC) DeletePatient(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Deleting patient with id: %s", id)

	patientID, err := uuid.Parse(id)
	if err != nil {
		pUC.log.Errorf("Invalid UUID format: %s", id)
		return domain.ErrPatientNotFound(id)
	}

	if err := pUC.patientRepo.Delete(ctx, patientID); err != nil {
		return err
	}

	pUC.log.Infof("Patient deleted successfully with ID: %s", id)
	return nil
}

func (pUC *patientUC) SearchPatientsByName(ctx context.Context, name string) ([]domain.PatientResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Searching patients by name: %s", name)

	patients, err := pUC.patientRepo.FindByNameContains(ctx, name)
	if err != nil {
		return nil, err
	}
	return domain.ToPatientResponses(patients), nil
}

func (pUC *patientUC) GetPatientsByDateOfBirthRange(ctx context.Context, start, end domain.Date) ([]domain.PatientResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Infof("Fetching patients with date of birth between %s and %s", start, end)

	patients, err := pUC.patientRepo.FindByDateOfBirthBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return domain.ToPatientResponses(patients), nil
}

func (pUC *patientUC) PatientExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	patientID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	return pUC.patientRepo.ExistsByID(ctx, patientID)
}

func (pUC *patientUC) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	return pUC.patientRepo.ExistsByEmail(ctx, email)
}

func (pUC *patientUC) GetStatistics(ctx context.Context) (*domain.PatientStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, pUC.TimeOut)
	defer cancel()

	pUC.log.Info("Fetching patient statistics")

	total, err := pUC.patientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.PatientStatistics{
		TotalPatients: total,
		Timestamp:     time.Now(),
	}, nil
}

// notifyBilling provisions the billing account in the background. The
// creation already committed, so a billing failure is only logged.
func (pUC *patientUC) notifyBilling(patientID, name, email string) {
	if pUC.billing == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pUC.TimeOut)
		defer cancel()

		if err := pUC.billing.CreateAccount(ctx, patientID, name, email); err != nil {
			pUC.log.Errorf("Billing account creation failed for patient %s: %v", patientID, err)
		}
	}()
}
