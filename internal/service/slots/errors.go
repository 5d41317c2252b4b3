package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	// или не принадлежит запрашивающему врачу
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDoctorNotFound возвращается, когда врач не найден в справочнике
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)
