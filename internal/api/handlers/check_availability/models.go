package check_availability

import (
	"github.com/m04kA/SMC-RentalWizard/internal/service/wizard/models"
	checkAvailability "github.com/m04kA/SMC-RentalWizard/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool                   `json:"available"`
	Reason    string                 `json:"reason,omitempty"`
	Session   *models.WizardResponse `json:"session"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available: resp.Available,
		Reason:    resp.Reason,
		Session:   models.FromDomainSession(resp.Session),
	}
}
