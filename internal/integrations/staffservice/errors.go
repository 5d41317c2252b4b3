package staffservice

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в справочнике
	ErrDoctorNotFound = errors.New("staffservice: doctor not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("staffservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice: internal error")
)
