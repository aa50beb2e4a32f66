package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *PatientRequest {
	return &PatientRequest{
		Name:           "Ann Lee",
		Email:          "ann@x.com",
		Address:        "1 Main St",
		DateOfBirth:    NewDate(1990, time.January, 1),
		RegisteredDate: NewDate(2024, time.January, 1),
	}
}

func TestPatientRequestValidate(t *testing.T) {
	require.NoError(t, validRequest().Validate())
}

func TestPatientRequestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *PatientRequest)
	}{
		{"blank name", func(r *PatientRequest) { r.Name = "   " }},
		{"single character name", func(r *PatientRequest) { r.Name = "A" }},
		{"missing email", func(r *PatientRequest) { r.Email = "" }},
		{"invalid email", func(r *PatientRequest) { r.Email = "not-an-email" }},
		{"blank address", func(r *PatientRequest) { r.Address = " " }},
		{"missing date of birth", func(r *PatientRequest) { r.DateOfBirth = Date{} }},
		{"future date of birth", func(r *PatientRequest) {
			r.DateOfBirth = Date{time.Now().AddDate(1, 0, 0)}
		}},
		{"missing registered date", func(r *PatientRequest) { r.RegisteredDate = Date{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestPatientRequestValidateTrimsFields(t *testing.T) {
	req := validRequest()
	req.Name = "  Ann Lee  "
	req.Email = " ann@x.com "

	require.NoError(t, req.Validate())
	assert.Equal(t, "Ann Lee", req.Name)
	assert.Equal(t, "ann@x.com", req.Email)
}
