package create_booking

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных, текст
	// содержит все найденные ошибки
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrRateLimited возвращается при превышении лимита заявок клиентом
	ErrRateLimited = errors.New("create_booking: too many booking requests")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в часовую сетку
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
