package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPatientResponse(t *testing.T) {
	patient := &Patient{
		ID:             uuid.New(),
		Name:           "Ann Lee",
		Email:          "ann@x.com",
		Address:        "1 Main St",
		DateOfBirth:    NewDate(1990, time.January, 1),
		RegisteredDate: NewDate(2024, time.January, 1),
	}

	resp := ToPatientResponse(patient)
	require.NotNil(t, resp)
	assert.Equal(t, patient.ID, resp.ID)
	assert.Equal(t, "Ann Lee", resp.Name)
	assert.Equal(t, "ann@x.com", resp.Email)
	assert.Equal(t, "1 Main St", resp.Address)
	assert.Equal(t, "1990-01-01", resp.DateOfBirth.String())
}

func TestToPatientResponseNil(t *testing.T) {
	assert.Nil(t, ToPatientResponse(nil))
}

func TestPatientResponseOmitsRegisteredDate(t *testing.T) {
	resp := ToPatientResponse(&Patient{
		Name:           "Ann Lee",
		RegisteredDate: NewDate(2024, time.January, 1),
	})

	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "registered_date")
}

func TestToPatient(t *testing.T) {
	req := &PatientRequest{
		Name:           "Ann Lee",
		Email:          "ann@x.com",
		Address:        "1 Main St",
		DateOfBirth:    NewDate(1990, time.January, 1),
		RegisteredDate: NewDate(2024, time.January, 1),
	}

	patient := ToPatient(req)
	require.NotNil(t, patient)
	assert.Equal(t, uuid.Nil, patient.ID, "id assignment belongs to the store")
	assert.Equal(t, "Ann Lee", patient.Name)
	assert.Equal(t, "ann@x.com", patient.Email)
	assert.Equal(t, "1 Main St", patient.Address)
	assert.Equal(t, "2024-01-01", patient.RegisteredDate.String())
}

func TestToPatientNil(t *testing.T) {
	assert.Nil(t, ToPatient(nil))
}
