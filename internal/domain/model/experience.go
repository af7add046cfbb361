package model

import (
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
)

type Experience struct {
	ID                int64                   `json:"id"`
	HostUserID        int64                   `json:"host_user_id"`
	Title             string                  `json:"title"`
	Venue             string                  `json:"venue"`
	ExperienceDate    time.Time               `json:"experience_date"`
	Commencement      string                  `json:"commencement"`
	Conclusion        string                  `json:"conclusion"`
	Description       string                  `json:"description"`
	Consideration     *float64                `json:"consideration"`
	ConsiderationType enums.ConsiderationType `json:"consideration_type"`
	IsActive          bool                    `json:"is_active"`
	ListedAt          time.Time               `json:"listed_at"`
}
