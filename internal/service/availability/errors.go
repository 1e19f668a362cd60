package availability

import "errors"

var (
	// ErrSlotUnavailable слот закрыт, день закрыт, время вне сетки или клиент уже занят в это время
	ErrSlotUnavailable = errors.New("availability: slot unavailable")

	// ErrSlotFull слот заполнен, доступен только лист ожидания
	ErrSlotFull = errors.New("availability: slot is full, waitlist only")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("availability: salon not found")

	// ErrSettingsUnavailable возвращается, когда настройки салона не удалось получить
	ErrSettingsUnavailable = errors.New("availability: salon settings unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrStorage возвращается при ошибках хранилища
	ErrStorage = errors.New("availability: storage error")
)
