package create_booking

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования.
// Дата и время приходят сырыми строками, чтобы формат проверялся
// вместе с остальными полями и ошибки накапливались.
type Request struct {
	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone string  // Телефон клиента
	ServiceID     int64   // ID услуги
	Date          string  // Дата в формате "2006-01-02"
	Time          string  // Время в формате "2:00 PM"
	VehicleType   string  // Тип автомобиля
	Message       *string // Сообщение клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceID     int64
	ServiceName   string // Денормализованное название услуги
	Date          time.Time
	Time          types.ClockTime
	VehicleType   string
	Message       *string
	Status        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
