package capacity

import "errors"

var (
	// ErrAccessDenied возвращается, когда настройки дня меняет не менеджер и не администратор
	ErrAccessDenied = errors.New("capacity: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("capacity: invalid input data")

	// ErrStorage возвращается при ошибках хранилища
	ErrStorage = errors.New("capacity: storage error")
)
