package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	// (либо не существует, либо принадлежит другому врачу)
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")

	// ErrNoFieldsToUpdate возвращается, когда в Update не передано ни одного поля
	ErrNoFieldsToUpdate = errors.New("slot.repository: no fields to update")
)
