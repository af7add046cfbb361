package dto

import "github.com/eliteconnections/backend/internal/domain/model"

// ExperienceRequest dates use the 2006-01-02 layout, clock fields 15:04.
type ExperienceRequest struct {
	Title             string   `json:"title"`
	Venue             string   `json:"venue"`
	ExperienceDate    string   `json:"experience_date"`
	Commencement      string   `json:"commencement"`
	Conclusion        string   `json:"conclusion"`
	Description       string   `json:"description"`
	Consideration     *float64 `json:"consideration"`
	ConsiderationType string   `json:"consideration_type"`
}

type ExperienceResponse struct {
	Experience model.Experience `json:"experience"`
}

type ExperiencesResponse struct {
	Items []model.Experience `json:"items"`
}
