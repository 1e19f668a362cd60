package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге салона
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidTimeSlot возвращается, когда услуги не помещаются в сутки
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
