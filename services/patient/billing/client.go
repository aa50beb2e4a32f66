package billing

import (
	"context"
	"fmt"
	"time"

	"patientservice/domain"

	"github.com/gofiber/fiber/v2"
)

type httpNotifier struct {
	baseURL string
}

// NewHTTPNotifier posts new-patient details to the billing service so it
// can provision an account. Callers treat failures as fire-and-forget.
func NewHTTPNotifier(baseURL string) domain.BillingNotifier {
	return &httpNotifier{
		baseURL: baseURL,
	}
}

func (n *httpNotifier) CreateAccount(ctx context.Context, patientID, name, email string) error {
	agent := fiber.Post(n.baseURL + "/billing-accounts")
	agent.JSON(fiber.Map{
		"patient_id": patientID,
		"name":       name,
		"email":      email,
	})

	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	}

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("could not reach billing service: %v", errs[0])
	}
	if statusCode >= fiber.StatusMultipleChoices {
		return fmt.Errorf("billing service returned status %d: %s", statusCode, body)
	}

	return nil
}

type noopNotifier struct{}

// NewNoopNotifier backs deployments without a billing service configured.
func NewNoopNotifier() domain.BillingNotifier {
	return noopNotifier{}
}

func (noopNotifier) CreateAccount(ctx context.Context, patientID, name, email string) error {
	return nil
}
