package dto

import (
	"time"

	"github.com/eliteconnections/backend/internal/domain/model"
)

// PortfolioUpdateRequest carries every member-editable portfolio field.
// DateOfBirth uses the 2006-01-02 layout.
type PortfolioUpdateRequest struct {
	PreferredName        string   `json:"preferred_name"`
	Gender               string   `json:"gender"`
	GenderPreference     string   `json:"gender_preference"`
	DateOfBirth          string   `json:"date_of_birth"`
	PrimaryLocation      string   `json:"primary_location"`
	PersonalStatement    string   `json:"personal_statement"`
	LifestylePreference  string   `json:"lifestyle_preference"`
	CurrentEngagement    string   `json:"current_engagement"`
	Physique             string   `json:"physique"`
	FamilyConsiderations string   `json:"family_considerations"`
	LifestyleHabits      string   `json:"lifestyle_habits"`
	Stature              string   `json:"stature"`
	FinancialCapacity    string   `json:"financial_capacity"`
	PersonalPhilosophy   string   `json:"personal_philosophy"`
	SeekingQualities     string   `json:"seeking_qualities"`
	ExpectationFramework string   `json:"expectation_framework"`
	ConsiderationValue   *float64 `json:"consideration_value"`
	ConsiderationPeriod  string   `json:"consideration_period"`
	PublicPortfolio      bool     `json:"public_portfolio"`
}

type PortfolioResponse struct {
	Portfolio model.Profile `json:"portfolio"`
}

type PortfolioViewResponse struct {
	Portfolio model.Profile `json:"portfolio"`
	Username  string        `json:"username"`
	Age       int           `json:"age,omitempty"`
	LifeStage string        `json:"life_stage,omitempty"`
	OwnedByMe bool          `json:"owned_by_me"`
}

type EngagementResponse struct {
	EngagementTier  string `json:"engagement_tier"`
	ExclusiveAccess bool   `json:"exclusive_access"`
	Status          string `json:"status"`
	PublicPortfolio bool   `json:"public_portfolio"`
}

type ModerationStateResponse struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
