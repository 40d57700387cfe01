package start_wizard

import (
	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	"github.com/m04kA/SMC-RentalWizard/internal/service/wizard/models"
)

// StartWizardRequest HTTP request model
type StartWizardRequest struct {
	ItemType string `json:"itemType"` // vehicle | apartment
	ItemID   string `json:"itemId"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *StartWizardRequest) ToServiceRequest(userID int64) *models.StartWizardRequest {
	return &models.StartWizardRequest{
		UserID:   userID,
		ItemType: domain.ItemType(r.ItemType),
		ItemID:   r.ItemID,
	}
}
