package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

// PortfolioDetails is the editable field set of a profile. Moderation state
// is deliberately absent - the service layer decides the status transition
// and passes the result to Save.
type PortfolioDetails struct {
	PreferredName        string
	Gender               string
	GenderPreference     string
	DateOfBirth          *time.Time
	PrimaryLocation      string
	PersonalStatement    string
	LifestylePreference  string
	CurrentEngagement    string
	Physique             string
	FamilyConsiderations string
	LifestyleHabits      string
	Stature              string
	FinancialCapacity    string
	PersonalPhilosophy   string
	SeekingQualities     string
	ExpectationFramework string
	ConsiderationValue   *float64
	ConsiderationPeriod  string
	PublicPortfolio      bool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	user_id,
	COALESCE(preferred_name, ''),
	COALESCE(gender, ''),
	COALESCE(gender_preference, ''),
	date_of_birth,
	COALESCE(primary_location, ''),
	latitude,
	longitude,
	COALESCE(personal_statement, ''),
	COALESCE(lifestyle_preference, ''),
	COALESCE(current_engagement, ''),
	COALESCE(physique, ''),
	COALESCE(family_considerations, ''),
	COALESCE(lifestyle_habits, ''),
	COALESCE(stature, ''),
	COALESCE(financial_capacity, ''),
	COALESCE(personal_philosophy, ''),
	COALESCE(seeking_qualities, ''),
	COALESCE(expectation_framework, ''),
	consideration_value,
	COALESCE(consideration_period, ''),
	engagement_tier,
	status,
	public_portfolio,
	view_count,
	last_active,
	created_at,
	updated_at`

func (r *ProfileRepo) scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.UserID,
		&p.PreferredName,
		&p.Gender,
		&p.GenderPreference,
		&p.DateOfBirth,
		&p.PrimaryLocation,
		&p.Latitude,
		&p.Longitude,
		&p.PersonalStatement,
		&p.LifestylePreference,
		&p.CurrentEngagement,
		&p.Physique,
		&p.FamilyConsiderations,
		&p.LifestyleHabits,
		&p.Stature,
		&p.FinancialCapacity,
		&p.PersonalPhilosophy,
		&p.SeekingQualities,
		&p.ExpectationFramework,
		&p.ConsiderationValue,
		&p.ConsiderationPeriod,
		&p.EngagementTier,
		&p.Status,
		&p.PublicPortfolio,
		&p.ViewCount,
		&p.LastActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id")
	}

	profile, err := r.scanProfile(r.pool.QueryRow(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE user_id = $1
`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

// FindOrCreate returns the profile for userID, lazily creating an empty
// draft row on first access. The second return value reports creation.
func (r *ProfileRepo) FindOrCreate(ctx context.Context, userID int64) (model.Profile, bool, error) {
	if r.pool == nil {
		return model.Profile{}, false, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.Profile{}, false, fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO profiles (user_id, status, public_portfolio, engagement_tier, created_at, updated_at)
VALUES ($1, 'draft', FALSE, 'standard', NOW(), NOW())
ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("lazily create profile: %w", err)
	}

	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return model.Profile{}, false, err
	}

	return profile, tag.RowsAffected() > 0, nil
}

// Save applies the submitted field set together with the status the
// transition function produced for the edit event.
func (r *ProfileRepo) Save(ctx context.Context, userID int64, details PortfolioDetails, status enums.PortfolioStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || !status.IsValid() {
		return fmt.Errorf("invalid profile save payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles SET
	preferred_name = $2,
	gender = $3,
	gender_preference = $4,
	date_of_birth = $5,
	primary_location = $6,
	personal_statement = $7,
	lifestyle_preference = $8,
	current_engagement = $9,
	physique = $10,
	family_considerations = $11,
	lifestyle_habits = $12,
	stature = $13,
	financial_capacity = $14,
	personal_philosophy = $15,
	seeking_qualities = $16,
	expectation_framework = $17,
	consideration_value = $18,
	consideration_period = $19,
	public_portfolio = $20,
	status = $21,
	updated_at = NOW()
WHERE user_id = $1
`,
		userID,
		details.PreferredName,
		details.Gender,
		details.GenderPreference,
		details.DateOfBirth,
		details.PrimaryLocation,
		details.PersonalStatement,
		details.LifestylePreference,
		details.CurrentEngagement,
		details.Physique,
		details.FamilyConsiderations,
		details.LifestyleHabits,
		details.Stature,
		details.FinancialCapacity,
		details.PersonalPhilosophy,
		details.SeekingQualities,
		details.ExpectationFramework,
		details.ConsiderationValue,
		details.ConsiderationPeriod,
		details.PublicPortfolio,
		string(status),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) SetStatus(ctx context.Context, userID int64, status enums.PortfolioStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || !status.IsValid() {
		return fmt.Errorf("invalid status payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET status = $2, updated_at = NOW()
WHERE user_id = $1
`, userID, string(status))
	if err != nil {
		return fmt.Errorf("set profile status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// IncrementViewCount bumps the counter in a single UPDATE so concurrent
// viewers never lose increments to read-modify-write races.
func (r *ProfileRepo) IncrementViewCount(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET view_count = view_count + 1
WHERE user_id = $1
`, userID)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) TouchLastActive(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE profiles
SET last_active = NOW()
WHERE user_id = $1
`, userID); err != nil {
		return fmt.Errorf("touch last active: %w", err)
	}

	return nil
}
