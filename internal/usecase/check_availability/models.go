package check_availability

import "github.com/m04kA/SMC-RentalWizard/internal/domain"

// Request модель запроса на проверку доступности
type Request struct {
	SessionID string // ID сессии визарда
	UserID    int64  // ID пользователя-владельца сессии
}

// Response модель результата проверки доступности
// При Available=false сессия остается на шаге выбора дат, Reason
// содержит причину от бэкенда; при Available=true сессия переведена
// на шаг оплаты
type Response struct {
	Available bool
	Reason    string
	Session   *domain.WizardSession
}
