package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlugTaken возвращается, когда slug уже занят другой услугой
	ErrSlugTaken = errors.New("service slug is already taken")

	// ErrServiceInUse возвращается при попытке удалить услугу с бронированиями
	ErrServiceInUse = errors.New("service has bookings and cannot be deleted")

	// ErrAccessDenied возвращается, когда у клиента нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation возвращается при некорректных данных услуги
	ErrValidation = errors.New("service validation failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
