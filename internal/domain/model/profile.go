package model

import (
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
)

type Profile struct {
	UserID               int64                 `json:"user_id"`
	PreferredName        string                `json:"preferred_name"`
	Gender               string                `json:"gender"`
	GenderPreference     string                `json:"gender_preference"`
	DateOfBirth          *time.Time            `json:"date_of_birth"`
	PrimaryLocation      string                `json:"primary_location"`
	Latitude             *float64              `json:"latitude"`
	Longitude            *float64              `json:"longitude"`
	PersonalStatement    string                `json:"personal_statement"`
	LifestylePreference  string                `json:"lifestyle_preference"`
	CurrentEngagement    string                `json:"current_engagement"`
	Physique             string                `json:"physique"`
	FamilyConsiderations string                `json:"family_considerations"`
	LifestyleHabits      string                `json:"lifestyle_habits"`
	Stature              string                `json:"stature"`
	FinancialCapacity    string                `json:"financial_capacity"`
	PersonalPhilosophy   string                `json:"personal_philosophy"`
	SeekingQualities     string                `json:"seeking_qualities"`
	ExpectationFramework string                `json:"expectation_framework"`
	ConsiderationValue   *float64              `json:"consideration_value"`
	ConsiderationPeriod  string                `json:"consideration_period"`
	EngagementTier       enums.EngagementTier  `json:"engagement_tier"`
	Status               enums.PortfolioStatus `json:"status"`
	PublicPortfolio      bool                  `json:"public_portfolio"`
	ViewCount            int64                 `json:"view_count"`
	LastActive           *time.Time            `json:"last_active"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// Visible reports whether the portfolio may be shown to other members.
func (p Profile) Visible() bool {
	return p.Status == enums.PortfolioStatusApproved && p.PublicPortfolio
}
