package update_draft

import (
	"context"

	"github.com/m04kA/SMC-RentalWizard/internal/service/wizard/models"
)

type WizardService interface {
	UpdateDraft(ctx context.Context, sessionID string, userID int64, req *models.UpdateDraftRequest) (*models.WizardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
