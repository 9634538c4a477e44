package settings

import "errors"

var (
	// ErrAccessDenied возвращается, когда у клиента нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation возвращается при некорректных настройках
	ErrValidation = errors.New("settings validation failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
