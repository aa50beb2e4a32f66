package delivery

import (
	"strconv"

	"patientservice/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

type patientHandler struct {
	puc domain.PatientUseCase
	log *logrus.Logger
}

func NewPatientHandler(app *fiber.App, uc domain.PatientUseCase, log *logrus.Logger) {
	handler := &patientHandler{
		puc: uc,
		log: log,
	}

	route := app.Group("/api/v1/patients")

	route.Get("/", handler.GetAllPatients)
	route.Get("/paginated", handler.GetPatientsPaginated)
	route.Get("/sorted", handler.GetPatientsSorted)
	route.Get("/search", handler.SearchPatientsByName)
	route.Get("/by-dob", handler.GetPatientsByDateOfBirthRange)
	route.Get("/check-email", handler.CheckEmailExists)
	route.Get("/statistics", handler.GetPatientStatistics)
	route.Get("/health", handler.Health)
	route.Post("/", handler.CreatePatient)
	route.Post("/bulk", handler.CreateMultiplePatients)
	route.Get("/:id", handler.GetPatientByID)
	route.Get("/:id/exists", handler.CheckPatientExists)
	route.Put("/:id", handler.UpdatePatient)
	route.Delete("/:id", handler.DeletePatient)
}

func (ph *patientHandler) GetAllPatients(c *fiber.Ctx) error {
	patients, err := ph.puc.GetAllPatients(c.Context())
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, patients)
}

func (ph *patientHandler) GetPatientsPaginated(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil || page < 0 {
		return ph.fail(c, domain.ValidationErr("Invalid page number: %s", c.Query("page")))
	}

	size, err := strconv.Atoi(c.Query("size", "10"))
	if err != nil || size < 1 {
		return ph.fail(c, domain.ValidationErr("Invalid page size: %s", c.Query("size")))
	}

	sortBy := c.Query("sort_by", "created_at")
	direction := c.Query("direction", domain.SortDescending)

	result, err := ph.puc.GetPatientsPage(c.Context(), page, size, sortBy, direction)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, result)
}

func (ph *patientHandler) GetPatientsSorted(c *fiber.Ctx) error {
	sortBy := c.Query("sort_by", "name")
	direction := c.Query("direction", domain.SortAscending)

	patients, err := ph.puc.GetAllPatientsSorted(c.Context(), sortBy, direction)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, patients)
}

func (ph *patientHandler) GetPatientByID(c *fiber.Ctx) error {
	patient, err := ph.puc.GetPatientByID(c.Context(), c.Params("id"))
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, patient)
}

func (ph *patientHandler) CreatePatient(c *fiber.Ctx) error {
	var req domain.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return ph.fail(c, domain.ValidationErr("Invalid request body: %s", err.Error()))
	}

	if err := req.Validate(); err != nil {
		return ph.fail(c, err)
	}

	id, err := ph.puc.CreatePatient(c.Context(), &req)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusCreated, id)
}

func (ph *patientHandler) CreateMultiplePatients(c *fiber.Ctx) error {
	var reqs []domain.PatientRequest
	if err := c.BodyParser(&reqs); err != nil {
		return ph.fail(c, domain.ValidationErr("Invalid request body: %s", err.Error()))
	}

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return ph.fail(c, err)
		}
	}

	ids, err := ph.puc.CreatePatients(c.Context(), reqs)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, ids)
}

func (ph *patientHandler) UpdatePatient(c *fiber.Ctx) error {
	var req domain.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return ph.fail(c, domain.ValidationErr("Invalid request body: %s", err.Error()))
	}

	if err := req.Validate(); err != nil {
		return ph.fail(c, err)
	}

	patient, err := ph.puc.UpdatePatient(c.Context(), c.Params("id"), &req)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, patient)
}

func (ph *patientHandler) DeletePatient(c *fiber.Ctx) error {
	if err := ph.puc.DeletePatient(c.Context(), c.Params("id")); err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, "Patient deleted successfully")
}

func (ph *patientHandler) SearchPatientsByName(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return ph.fail(c, domain.ValidationErr("Query parameter 'name' is required"))
	}

	patients, err := ph.puc.SearchPatientsByName(c.Context(), name)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, patients)
}

func (ph *patientHandler) GetPatientsByDateOfBirthRange(c *fiber.Ctx) error {
	start, err := domain.ParseDate(c.Query("start_date"))
	if err != nil {
		return ph.fail(c, domain.ValidationErr("%s", err.Error()))
	}

	end, err := domain.ParseDate(c.Query("end_date"))
	if err != nil {
		return ph.fail(c, domain.ValidationErr("%s", err.Error()))
	}

	patients, err := ph.puc.GetPatientsByDateOfBirthRange(c.Context(), start, end)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, patients)
}

func (ph *patientHandler) CheckPatientExists(c *fiber.Ctx) error {
	exists, err := ph.puc.PatientExists(c.Context(), c.Params("id"))
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, exists)
}

func (ph *patientHandler) CheckEmailExists(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return ph.fail(c, domain.ValidationErr("Query parameter 'email' is required"))
	}

	exists, err := ph.puc.EmailExists(c.Context(), email)
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, exists)
}

func (ph *patientHandler) GetPatientStatistics(c *fiber.Ctx) error {
	stats, err := ph.puc.GetStatistics(c.Context())
	if err != nil {
		return ph.fail(c, err)
	}
	return success(c, fiber.StatusOK, stats)
}

func (ph *patientHandler) Health(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, "Patient Service is running")
}

func success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(domain.GenericResponse{
		Status: "success",
		Data:   data,
	})
}

// fail translates the error kind into a status code exactly once. Anything
// outside the taxonomy is logged in full and answered with a generic message.
func (ph *patientHandler) fail(c *fiber.Ctx, err error) error {
	message := err.Error()
	var status int

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		status = fiber.StatusNotFound
	case domain.KindConflict:
		status = fiber.StatusConflict
	case domain.KindValidation:
		status = fiber.StatusBadRequest
	default:
		ph.log.Errorf("Unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		status = fiber.StatusInternalServerError
		message = genericErrorMessage
	}

	return c.Status(status).JSON(domain.GenericResponse{
		Status: "error",
		Data:   message,
	})
}
