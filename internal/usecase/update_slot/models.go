package update_slot

import (
	"github.com/m04kA/MedDir-SlotService/internal/domain"
)

// Request модель запроса на обновление слота
// Поля-указатели: nil означает "не менять"
type Request struct {
	SlotID   int64 // ID обновляемого слота
	DoctorID int64 // ID врача (из аутентификации)

	Changes domain.SlotUpdate
}

// Response обновлённый слот
type Response struct {
	Slot *domain.DoctorSlot
}
