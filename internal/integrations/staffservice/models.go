package staffservice

// Doctor модель врача из справочника персонала
type Doctor struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Specialization *string `json:"specialization,omitempty"`
	IsActive       bool    `json:"isActive"`
}
