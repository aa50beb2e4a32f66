package domain

// ToPatientResponse copies a record into its external shape. A nil record
// maps to nil instead of an error.
func ToPatientResponse(patient *Patient) *PatientResponse {
	if patient == nil {
		return nil
	}
	return &PatientResponse{
		ID:          patient.ID,
		Name:        patient.Name,
		Email:       patient.Email,
		Address:     patient.Address,
		DateOfBirth: patient.DateOfBirth,
	}
}

func ToPatientResponses(patients []Patient) []PatientResponse {
	responses := make([]PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *ToPatientResponse(&patients[i]))
	}
	return responses
}

// ToPatient builds a new record from a request. The ID stays unset until
// the store assigns one at insert time.
func ToPatient(req *PatientRequest) *Patient {
	if req == nil {
		return nil
	}
	return &Patient{
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		DateOfBirth:    req.DateOfBirth,
		RegisteredDate: req.RegisteredDate,
	}
}
