package hospitalservice

// Hospital модель больницы из справочника
type Hospital struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
}
