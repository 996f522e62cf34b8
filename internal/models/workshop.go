package models

// Workshop - запись справочника мастерских, нужная для подбора кандидатов
type Workshop struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	City             string   `json:"city"`
	Location         Location `json:"location"`
	EmergencyCapable bool     `json:"emergency_capable"`
}
