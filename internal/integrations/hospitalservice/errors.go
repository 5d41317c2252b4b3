package hospitalservice

import "errors"

var (
	// ErrHospitalNotFound возвращается, когда больница не найдена
	ErrHospitalNotFound = errors.New("hospitalservice: hospital not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("hospitalservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("hospitalservice: internal error")
)
