package get_available_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrAccessDenied возвращается, когда клиент запрашивает доступность для другого клиента
	ErrAccessDenied = errors.New("access denied")

	// ErrSettingsUnavailable возвращается, когда настройки салона недоступны
	ErrSettingsUnavailable = errors.New("salon settings unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
