package domain

import "time"

// Quote производные ценовые поля черновика
type Quote struct {
	NumberOfDays int
	TotalPrice   float64
}

// ComputePrice вычисляет количество дней и итоговую стоимость
// NumberOfDays = ceil((end - start) / 24h)
// Неположительные диапазоны не зажимаются: отклонять их обязан вызывающий
// (валидация дат на шаге 1), расчет остается чистой функцией
func ComputePrice(start, end time.Time, unitRate float64) Quote {
	days := daysBetween(start, end)
	return Quote{
		NumberOfDays: days,
		TotalPrice:   float64(days) * unitRate,
	}
}

// UnitRateFor возвращает ставку за единицу аренды по типу объекта
// Автомобили тарифицируются за день, квартиры — по месячному эквиваленту
// ставки за ночь (см. ApartmentMonthlyFactor)
func UnitRateFor(itemType ItemType, pricePerDay, pricePerNight float64) float64 {
	if itemType == ItemTypeApartment {
		return pricePerNight * ApartmentMonthlyFactor
	}
	return pricePerDay
}

// daysBetween возвращает ceil((end - start) / 24h)
// Для end <= start результат не положителен
func daysBetween(start, end time.Time) int {
	diff := end.Sub(start)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
