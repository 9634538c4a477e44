package get_available_slots

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date      string // Дата в формате "2006-01-02"
	ServiceID *int64 // ID услуги (опционально)
}

// Response модель ответа со свободными слотами на дату
type Response struct {
	Date           time.Time
	ServiceID      *int64
	AvailableSlots []types.ClockTime // Свободные слоты в хронологическом порядке
	TotalSlots     int               // Размер полной сетки
	BookedSlots    int               // Количество занятых слотов
}
